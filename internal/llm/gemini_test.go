package llm

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.5-flash", "gemini-2.5-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema_QuestionBatch(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_text": map[string]any{"type": "string", "description": "Shown to the player"},
						"choices":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"answer":        map[string]any{"type": "string"},
						"era":           map[string]any{"type": "string", "enum": []any{"ancient", "medieval", "modern"}},
						"year":          map[string]any{"type": "integer"},
					},
					"required": []any{"question_text", "choices", "answer"},
				},
			},
		},
		"required": []any{"questions"},
	}

	schema := buildGeminiSchema(def)
	if schema.Type != genai.TypeObject || len(schema.Required) != 1 {
		t.Fatalf("root = %s with required %v", schema.Type, schema.Required)
	}
	questions := schema.Properties["questions"]
	if questions == nil || questions.Type != genai.TypeArray {
		t.Fatalf("questions = %+v, want an array", questions)
	}
	item := questions.Items
	if item.Type != genai.TypeObject || len(item.Properties) != 5 || len(item.Required) != 3 {
		t.Fatalf("item = %s, %d properties, required %v", item.Type, len(item.Properties), item.Required)
	}
	if item.Properties["question_text"].Description != "Shown to the player" {
		t.Errorf("description not carried over")
	}
	if item.Properties["choices"].Items.Type != genai.TypeString {
		t.Errorf("choices items = %s", item.Properties["choices"].Items.Type)
	}
	if len(item.Properties["era"].Enum) != 3 {
		t.Errorf("era enum = %v", item.Properties["era"].Enum)
	}
	if item.Properties["year"].Type != genai.TypeInteger {
		t.Errorf("year = %s", item.Properties["year"].Type)
	}
	want := []string{"question_text", "choices", "answer", "era", "year"}
	if !slices.Equal(item.PropertyOrdering, want) {
		t.Errorf("PropertyOrdering = %v, want %v", item.PropertyOrdering, want)
	}
}

func TestBuildGeminiSchema_ItemBounds(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": 4,
		"maxItems": float64(4),
	})
	if schema.MinItems == nil || *schema.MinItems != 4 || schema.MaxItems == nil || *schema.MaxItems != 4 {
		t.Fatalf("bounds = %v..%v", schema.MinItems, schema.MaxItems)
	}
	if schema.PropertyOrdering != nil {
		t.Errorf("arrays have no property ordering: %v", schema.PropertyOrdering)
	}
}

func TestGeminiBlocked(t *testing.T) {
	text := &genai.Content{Parts: []*genai.Part{{Text: `{"questions":[]}`}}}
	cases := []struct {
		name    string
		result  *genai.GenerateContentResponse
		blocked bool
	}{
		{"answered", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: text, FinishReason: genai.FinishReasonStop}}}, false},
		{"cut off", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: text, FinishReason: genai.FinishReasonMaxTokens}}}, false},
		{"prompt blocked", &genai.GenerateContentResponse{PromptFeedback: &genai.GenerateContentResponsePromptFeedback{BlockReason: genai.BlockedReasonSafety}}, true},
		{"reply withheld", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}, true},
		{"no candidates", &genai.GenerateContentResponse{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := geminiBlocked(tc.result)
			if (err != nil) != tc.blocked {
				t.Fatalf("err = %v, blocked = %v", err, tc.blocked)
			}
			if tc.blocked && KindOf(err) != KindBadOutput {
				t.Errorf("KindOf = %d", KindOf(err))
			}
		})
	}
}

func TestGeminiContents(t *testing.T) {
	contents := geminiContents([]Message{
		{Role: RoleUser, Content: "Ask about the Silk Road."},
		{Role: RoleAssistant, Content: "{}"},
	})
	if len(contents) != 2 || contents[0].Role != genai.RoleUser || contents[1].Role != genai.RoleModel {
		t.Fatalf("contents = %+v", contents)
	}
	if contents[0].Parts[0].Text != "Ask about the Silk Road." {
		t.Errorf("text = %q", contents[0].Parts[0].Text)
	}
}

func TestMapGeminiError(t *testing.T) {
	var rl *ErrRateLimit
	if err := mapGeminiError(genai.APIError{Code: http.StatusTooManyRequests}); !errors.As(err, &rl) {
		t.Errorf("429 value error mapped to %T", err)
	}
	wrapped := fmt.Errorf("generate: %w", &genai.APIError{Code: http.StatusTooManyRequests})
	if err := mapGeminiError(wrapped); !errors.As(err, &rl) {
		t.Errorf("wrapped 429 pointer error mapped to %T", err)
	}

	var unavail *ErrProviderUnavailable
	if err := mapGeminiError(genai.APIError{Code: http.StatusServiceUnavailable}); !errors.As(err, &unavail) {
		t.Errorf("503 mapped to %T", err)
	}
	if err := mapGeminiError(errors.New("dial tcp: connection refused")); !errors.As(err, &unavail) {
		t.Errorf("network error mapped to %T", err)
	}
}
