package questiongen

import "github.com/facebookverify2025-dot/history-vault-ai/internal/llm"

// BatchSchema is the JSON schema for a generated batch of questions.
var BatchSchema = &llm.Schema{
	Name:        "history-question-batch",
	Description: "A batch of multiple-choice history quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_text": map[string]any{
							"type":        "string",
							"description": "The question shown to the player",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 distinct answer options",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from choices",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One sentence of historical context for the answer",
						},
					},
					"required":             []any{"question_text", "choices", "answer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
