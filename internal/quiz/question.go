// Package quiz defines the validated records shared by the quiz engine,
// the question store and the roster: questions, users and game statistics.
package quiz

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Choice count bounds for a question.
const (
	MinChoices = 2
	MaxChoices = 6
)

// Source records where a question came from.
type Source string

const (
	SourceManual    Source = "manual"
	SourceGenerated Source = "generated"
	SourceImported  Source = "imported"
)

// Label returns a short display name for the source.
func (s Source) Label() string {
	switch s {
	case SourceGenerated:
		return "AI"
	case SourceImported:
		return "JSON"
	default:
		return "Manual"
	}
}

// UnmarshalJSON accepts the canonical names and the legacy "AI" / "json"
// labels written by older exports. Unknown values decode as manual.
func (s *Source) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "generated", "ai":
		*s = SourceGenerated
	case "imported", "json":
		*s = SourceImported
	default:
		*s = SourceManual
	}
	return nil
}

// Question is a multiple-choice history question. CorrectAnswer is always
// one of Choices.
type Question struct {
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	Choices       []string  `json:"choices"`
	CorrectAnswer string    `json:"correctAnswer"`
	Source        Source    `json:"source"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewQuestion builds a Question with a fresh ID. Choices are trimmed and
// blank entries dropped before the invariants are checked.
func NewQuestion(text string, choices []string, correct string, source Source) (Question, error) {
	q := Question{
		ID:            uuid.NewString(),
		Text:          strings.TrimSpace(text),
		Choices:       cleanChoices(choices),
		CorrectAnswer: strings.TrimSpace(correct),
		Source:        source,
		CreatedAt:     time.Now(),
	}
	if q.Source == "" {
		q.Source = SourceManual
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks the invariants of an already-built question. Records read
// back from storage go through here so a corrupt entry never reaches a
// session.
func (q Question) Validate() error {
	if q.ID == "" {
		return invalid("id", "must not be empty")
	}
	if strings.TrimSpace(q.Text) == "" {
		return invalid("text", "must not be empty")
	}
	if n := len(q.Choices); n < MinChoices || n > MaxChoices {
		return invalid("choices", "need %d to %d non-blank choices, got %d", MinChoices, MaxChoices, n)
	}
	seen := make(map[string]bool, len(q.Choices))
	for _, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return invalid("choices", "blank choice")
		}
		if seen[c] {
			return invalid("choices", "duplicate choice %q", c)
		}
		seen[c] = true
	}
	if q.CorrectAnswer == "" {
		return invalid("correctAnswer", "no correct answer selected")
	}
	if !seen[q.CorrectAnswer] {
		return invalid("correctAnswer", "%q is not one of the choices", q.CorrectAnswer)
	}
	return nil
}

// WithChoices returns a copy of q holding the given choice order.
func (q Question) WithChoices(choices []string) Question {
	q.Choices = slices.Clone(choices)
	return q
}

// IsCorrect reports whether choice matches the correct answer exactly.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}

// String implements fmt.Stringer for log output.
func (q Question) String() string {
	return fmt.Sprintf("%s (%d choices, %s)", q.Text, len(q.Choices), q.Source)
}

func cleanChoices(choices []string) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
