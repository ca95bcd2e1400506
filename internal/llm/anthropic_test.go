package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

// newTestAnthropicProvider points a provider built from config at handler
// and counts the requests it receives.
func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) (*AnthropicProvider, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewAnthropicProvider: %v", err)
	}
	return p, &hits
}

func anthropicReply(text, stop string) http.HandlerFunc {
	return anthropicBlocks(stop, map[string]any{"type": "text", "text": text})
}

func anthropicBlocks(stop string, blocks ...map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     blocks,
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": stop,
			"usage":       map[string]any{"input_tokens": 80, "output_tokens": 400},
		})
	}
}

func anthropicFailure(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": kind},
		})
	}
}

func questionSchema() *Schema {
	return &Schema{
		Name: "test-question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "string"},
			},
			"required": []any{"question", "answer"},
		},
	}
}

func TestAnthropicProvider_StructuredAnswer(t *testing.T) {
	p, _ := newTestAnthropicProvider(t, anthropicReply(`{"question":"Who founded the Ayyubid dynasty?","answer":"Saladin"}`, "end_turn"))
	resp, err := p.Generate(context.Background(), Request{
		System:    "You write history quiz questions.",
		Messages:  []Message{{Role: RoleUser, Content: "Generate a question."}},
		Schema:    questionSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage != (Usage{InputTokens: 80, OutputTokens: 400, TotalTokens: 480}) {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd {
		t.Errorf("StopReason = %q", resp.StopReason)
	}
	if resp.Model != "claude-haiku-4-5-20251001" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	p, _ := newTestAnthropicProvider(t, anthropicBlocks("end_turn",
		map[string]any{"type": "text", "text": "```json\n{\"question\":\"Who was the last Tsar of Russia?\","},
		map[string]any{"type": "text", "text": "\"answer\":\"Nicholas II\"}\n```"},
	))
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Generate a question."}},
		Schema:    questionSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct{ Answer string }
	if err := json.Unmarshal(resp.Content, &got); err != nil || got.Answer != "Nicholas II" {
		t.Fatalf("content = %s (err %v)", resp.Content, err)
	}
}

func TestAnthropicProvider_Failures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    Kind
	}{
		{"rate limited", anthropicFailure(http.StatusTooManyRequests, "rate_limit_error"), KindRateLimited},
		{"server error", anthropicFailure(http.StatusInternalServerError, "api_error"), KindUnavailable},
		{"overloaded", anthropicFailure(529, "overloaded_error"), KindUnavailable},
		{"no text block", anthropicBlocks("end_turn"), KindBadOutput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, hits := newTestAnthropicProvider(t, tc.handler)
			_, err := p.Generate(context.Background(), Request{
				Messages:  []Message{{Role: RoleUser, Content: "Generate a question."}},
				MaxTokens: 100,
			})
			if err == nil {
				t.Fatal("expected error")
			}
			if got := KindOf(err); got != tc.want {
				t.Fatalf("KindOf = %d, want %d (err: %T %v)", got, tc.want, err, err)
			}
			if hits.Load() != 1 {
				t.Errorf("server saw %d requests; the SDK must not retry on its own", hits.Load())
			}
		})
	}
}

func TestAnthropicProvider_TruncatedStructuredReply(t *testing.T) {
	p, _ := newTestAnthropicProvider(t, anthropicReply(`{"question":"Who was the last Tsar of Rus`, "max_tokens"))
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Generate a question."}},
		Schema:    questionSchema(),
		MaxTokens: 16,
	})
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
	if KindOf(err) != KindBadOutput {
		t.Errorf("KindOf = %d", KindOf(err))
	}
}

func TestAnthropicProvider_ReplyOutsideSchema(t *testing.T) {
	p, _ := newTestAnthropicProvider(t, anthropicReply(`{"question":"Who was the last Tsar of Russia?"}`, "end_turn"))
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Generate a question."}},
		Schema:    questionSchema(),
		MaxTokens: 256,
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestAnthropicParams(t *testing.T) {
	params := anthropicParams("claude-haiku-4-5-20251001", Request{
		System: "You write history quiz questions.",
		Messages: []Message{
			{Role: RoleUser, Content: "Ask about Byzantium."},
			{Role: RoleAssistant, Content: "{}"},
			{Role: RoleUser, Content: "Again, valid this time."},
		},
		Schema:      questionSchema(),
		MaxTokens:   512,
		Temperature: 0.8,
	})
	if params.MaxTokens != 512 || len(params.System) != 1 {
		t.Fatalf("params = %+v", params)
	}
	roles := []anthropic.MessageParamRole{
		anthropic.MessageParamRoleUser,
		anthropic.MessageParamRoleAssistant,
		anthropic.MessageParamRoleUser,
	}
	if len(params.Messages) != len(roles) {
		t.Fatalf("got %d messages", len(params.Messages))
	}
	for i, m := range params.Messages {
		if m.Role != roles[i] {
			t.Errorf("message %d role = %q, want %q", i, m.Role, roles[i])
		}
	}
	if !params.Temperature.Valid() {
		t.Error("temperature should be set")
	}
}

func TestAnthropicModelAliases(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-sonnet", "claude-sonnet-4-20250514"},
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", "claude-sonnet-4-20250514"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicAliases); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
