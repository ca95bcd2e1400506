package achievements

import (
	"time"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// Evaluator checks statistics against a fixed, ordered definition table.
type Evaluator struct {
	defs []Achievement
	now  func() time.Time
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithDefinitions replaces the built-in table.
func WithDefinitions(defs []Achievement) EvaluatorOption {
	return func(e *Evaluator) { e.defs = append([]Achievement(nil), defs...) }
}

// WithClock replaces time.Now for the unlock stamp.
func WithClock(now func() time.Time) EvaluatorOption {
	return func(e *Evaluator) { e.now = now }
}

// NewEvaluator returns an Evaluator over the built-in definitions.
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{defs: Defaults(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Definitions returns the table the evaluator checks, in order.
func (e *Evaluator) Definitions() []Achievement {
	return append([]Achievement(nil), e.defs...)
}

// Evaluate returns every achievement whose condition holds for stats and
// which is not in unlocked, in declaration order. All results carry the
// same UnlockedAt instant. It has no side effects.
func (e *Evaluator) Evaluate(stats quiz.GameStats, unlocked Set) []Achievement {
	at := e.now()
	var out []Achievement
	for _, def := range e.defs {
		if unlocked.Has(def.ID) || def.Condition == nil || !def.Condition(stats) {
			continue
		}
		a := def
		a.UnlockedAt = at
		out = append(out, a)
	}
	return out
}
