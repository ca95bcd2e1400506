package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/llm"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// LLMGenerator produces questions using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

type batchOutput struct {
	Questions []Candidate `json:"questions"`
}

// Generate asks for input.Count questions on input.Topic. Candidates that
// fail a validator or the quiz.Question invariants are reported in
// Result.Rejected. It fails with ErrNoQuestions when nothing survived.
func (g *LLMGenerator) Generate(ctx context.Context, input Input) (Result, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
	input.Count = clampCount(input.Count)

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Result{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out batchOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Result{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	var res Result
	seen := Input{Topic: input.Topic, Count: input.Count, Existing: append([]string(nil), input.Existing...)}
	for _, c := range out.Questions {
		if len(res.Questions) == input.Count {
			break
		}
		if verr := g.validate(c, seen); verr != nil {
			res.Rejected = append(res.Rejected, Rejection{Candidate: c, Err: verr})
			continue
		}
		q, err := quiz.NewQuestion(c.Text, c.Choices, c.Answer, quiz.SourceGenerated)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{
				Candidate: c,
				Err:       &ValidationError{Validator: "record", Message: err.Error(), Retryable: true},
			})
			continue
		}
		res.Questions = append(res.Questions, q)
		seen.Existing = append(seen.Existing, q.Text)
	}

	slog.Info("questions generated",
		"topic", input.Topic,
		"requested", input.Count,
		"accepted", len(res.Questions),
		"rejected", len(res.Rejected),
	)

	if len(res.Questions) == 0 {
		if len(res.Rejected) > 0 {
			return res, fmt.Errorf("%w: %v", ErrNoQuestions, res.Rejected[0].Err)
		}
		return res, ErrNoQuestions
	}
	return res, nil
}

func (g *LLMGenerator) validate(c Candidate, input Input) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(c, input); verr != nil {
			return verr
		}
	}
	return nil
}
