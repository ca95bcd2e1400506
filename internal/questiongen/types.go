// Package questiongen asks an LLM for history multiple-choice questions and
// filters the candidates through a validator chain before they become
// quiz.Question records.
package questiongen

import (
	"errors"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// Batch size bounds for a single request.
const (
	MinCount = 1
	MaxCount = 10
)

// ErrNoQuestions is returned when every candidate was rejected.
var ErrNoQuestions = errors.New("no usable questions generated")

// Input describes what to generate.
type Input struct {
	// Topic is the free-text history subject, e.g. "the Abbasid caliphate".
	Topic string

	// Count is the number of questions wanted, clamped to [MinCount, MaxCount].
	Count int

	// Existing holds the texts already in the question bank, used both in
	// the prompt and by the dedup validator.
	Existing []string
}

// Candidate is one question as the LLM returned it, before validation.
type Candidate struct {
	Text        string   `json:"question_text"`
	Choices     []string `json:"choices"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Rejection records why a candidate was dropped.
type Rejection struct {
	Candidate Candidate
	Err       *ValidationError
}

// Result is the outcome of one generation request.
type Result struct {
	Questions []quiz.Question
	Rejected  []Rejection
}

func clampCount(n int) int {
	switch {
	case n < MinCount:
		return MinCount
	case n > MaxCount:
		return MaxCount
	}
	return n
}
