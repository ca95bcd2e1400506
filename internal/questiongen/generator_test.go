package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/llm"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

func batchJSON() json.RawMessage {
	return json.RawMessage(`{
		"questions": [
			{
				"question_text": "Which battle in 1187 led to Saladin's recapture of Jerusalem?",
				"choices": ["Hattin", "Ain Jalut", "Manzikert", "Yarmouk"],
				"answer": "Hattin",
				"explanation": "Victory at Hattin broke the crusader field army."
			},
			{
				"question_text": "Who founded the Ayyubid dynasty?",
				"choices": ["Saladin", "Nur ad-Din", "Baybars", "Zengi"],
				"answer": "Saladin",
				"explanation": "Duplicate of a bank question."
			},
			{
				"question_text": "Which Mongol ruler sacked Baghdad in 1258?",
				"choices": ["Hulagu", "Genghis", "Ogedei", "Kublai"],
				"answer": "Mongke",
				"explanation": "The answer is missing from the choices."
			},
			{
				"question_text": "The Umayyad capital was which city?",
				"choices": ["Damascus", "Baghdad", "Medina", "Cordoba"],
				"answer": "Damascus",
				"explanation": "Mu'awiya ruled from Damascus."
			}
		]
	}`)
}

func TestGenerate_FiltersCandidates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON()})
	gen := New(mock, DefaultConfig())

	res, err := gen.Generate(context.Background(), Input{
		Topic:    "Medieval Islamic history",
		Count:    4,
		Existing: []string{"Who founded the Ayyubid dynasty?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Questions) != 2 {
		t.Fatalf("expected 2 accepted, got %d", len(res.Questions))
	}
	if len(res.Rejected) != 2 {
		t.Fatalf("expected 2 rejected, got %d", len(res.Rejected))
	}
	if res.Rejected[0].Err.Validator != "dedup" {
		t.Errorf("first rejection: expected dedup, got %q", res.Rejected[0].Err.Validator)
	}
	if res.Rejected[1].Err.Validator != "answer" {
		t.Errorf("second rejection: expected answer, got %q", res.Rejected[1].Err.Validator)
	}

	for _, q := range res.Questions {
		if q.Source != quiz.SourceGenerated {
			t.Errorf("%q: source = %v, want generated", q.Text, q.Source)
		}
		if q.ID == "" {
			t.Errorf("%q: missing ID", q.Text)
		}
		if err := q.Validate(); err != nil {
			t.Errorf("%q: invalid question: %v", q.Text, err)
		}
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON()})
	gen := New(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "Crusades", Count: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != BatchSchema {
		t.Error("expected batch schema on request")
	}
	if req.System != systemPrompt {
		t.Error("expected history system prompt")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "Topic: Crusades") {
		t.Errorf("user message missing topic: %q", msg)
	}
	if !strings.Contains(msg, "Number of questions: 10") {
		t.Errorf("count should be clamped to 10: %q", msg)
	}
	if !strings.Contains(msg, "Already in the bank:\nNone") {
		t.Errorf("user message missing empty dedup list: %q", msg)
	}
}

func TestGenerate_StopsAtCount(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON()})
	gen := New(mock, DefaultConfig())

	res, err := gen.Generate(context.Background(), Input{Topic: "any", Count: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(res.Questions))
	}
}

func TestGenerate_DuplicateWithinBatch(t *testing.T) {
	payload := json.RawMessage(`{"questions":[
		{"question_text":"Who built the Dome of the Rock?","choices":["Abd al-Malik","Harun al-Rashid"],"answer":"Abd al-Malik","explanation":""},
		{"question_text":"Who built the Dome of the Rock?","choices":["Abd al-Malik","Al-Mansur"],"answer":"Abd al-Malik","explanation":""}
	]}`)
	gen := New(llm.NewMockProvider(llm.MockResponse{Content: payload}), DefaultConfig())

	res, err := gen.Generate(context.Background(), Input{Topic: "Umayyads", Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Questions) != 1 || len(res.Rejected) != 1 {
		t.Fatalf("expected 1 accepted and 1 rejected, got %d/%d", len(res.Questions), len(res.Rejected))
	}
}

func TestGenerate_NothingUsable(t *testing.T) {
	payload := json.RawMessage(`{"questions":[{"question_text":"","choices":[],"answer":"","explanation":""}]}`)
	gen := New(llm.NewMockProvider(llm.MockResponse{Content: payload}), DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "x", Count: 1})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	gen := New(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}), DefaultConfig())

	_, err := gen.Generate(context.Background(), Input{Topic: "x", Count: 1})
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestGenerate_MalformedJSON(t *testing.T) {
	gen := New(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)}), DefaultConfig())

	if _, err := gen.Generate(context.Background(), Input{Topic: "x", Count: 1}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGenerate_OfflineSampleBatch(t *testing.T) {
	gen := New(llm.NewOfflineProvider(SampleBatch()), DefaultConfig())

	first, err := gen.Generate(context.Background(), Input{Topic: "Islamic history", Count: MaxCount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Questions) != MaxCount {
		t.Fatalf("accepted %d, want %d", len(first.Questions), MaxCount)
	}
	if len(first.Rejected) != 0 {
		t.Fatalf("sample candidate rejected: %v", first.Rejected[0].Err)
	}

	var existing []string
	for _, q := range first.Questions {
		existing = append(existing, q.Text)
	}
	second, err := gen.Generate(context.Background(), Input{Topic: "Islamic history", Count: MaxCount, Existing: existing})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := len(sampleCandidates) - MaxCount; len(second.Questions) != want {
		t.Fatalf("second run accepted %d, want %d", len(second.Questions), want)
	}

	for _, q := range second.Questions {
		existing = append(existing, q.Text)
	}
	_, err = gen.Generate(context.Background(), Input{Topic: "Islamic history", Count: MaxCount, Existing: existing})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("exhausted sample: err = %v, want ErrNoQuestions", err)
	}
}
