package questiongen

import (
	"fmt"
	"strings"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// Length limits for generated text.
const (
	maxQuestionLen = 300
	maxChoiceLen   = 120
)

// StructuralValidator checks required fields and length limits.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(c Candidate, _ Input) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}
	text := strings.TrimSpace(c.Text)
	switch {
	case text == "":
		return fail("question_text is empty")
	case len(text) > maxQuestionLen:
		return fail("question_text exceeds %d characters", maxQuestionLen)
	case len(c.Choices) < quiz.MinChoices || len(c.Choices) > quiz.MaxChoices:
		return fail("need %d to %d choices, got %d", quiz.MinChoices, quiz.MaxChoices, len(c.Choices))
	case strings.TrimSpace(c.Answer) == "":
		return fail("answer is empty")
	}
	for _, ch := range c.Choices {
		if strings.TrimSpace(ch) == "" {
			return fail("blank choice")
		}
		if len(ch) > maxChoiceLen {
			return fail("choice exceeds %d characters", maxChoiceLen)
		}
	}
	return nil
}

// AnswerValidator checks that the answer is exactly one of the choices and
// that no two choices read the same.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(c Candidate, _ Input) *ValidationError {
	answer := strings.TrimSpace(c.Answer)
	matches := 0
	seen := make(map[string]bool, len(c.Choices))
	for _, ch := range c.Choices {
		norm := normalize(ch)
		if seen[norm] {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("duplicate choice %q", ch), Retryable: true}
		}
		seen[norm] = true
		if strings.TrimSpace(ch) == answer {
			matches++
		}
	}
	if matches != 1 {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q must match exactly one choice", answer),
			Retryable: true,
		}
	}
	return nil
}
