package session

import (
	"fmt"
	"strings"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// Phase is where a session is in its lifecycle.
type Phase int

const (
	PhaseNotStarted Phase = iota // No Start call yet
	PhaseInProgress              // Serving questions
	PhaseCompleted               // Last question answered and advanced past
	PhaseEmpty                   // Started with no questions; nothing to play
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseInProgress:
		return "in-progress"
	case PhaseCompleted:
		return "completed"
	case PhaseEmpty:
		return "empty"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// State is a read-only view of the engine position.
type State struct {
	Phase Phase

	// Index is the zero-based position of the current question.
	Index int

	// Total is the number of questions in the session.
	Total int

	// Answered is true once the current question has been answered and
	// the engine is waiting for Advance.
	Answered bool
}

// SessionQuestion is a Question whose choice order was shuffled for one
// session. It is built once at Start and never changed afterwards.
type SessionQuestion struct {
	quiz.Question
}

// AnswerResult is what SubmitAnswer reports back to the host.
type AnswerResult struct {
	Correct       bool
	Choice        string
	CorrectAnswer string

	// Points awarded for this answer: 15, 10 or 0.
	Points int

	// TimeTakenMs is the time from question display to submission.
	TimeTakenMs int64

	// Score is the running score after this answer.
	Score int

	// Stats is the post-answer snapshot to hand to the achievement
	// evaluator and the persistence layer.
	Stats quiz.GameStats
}

// Scope decides whether the achievement-relevant counters (streak,
// questions answered, correct answers, average time) restart with every
// session or run across the user's lifetime.
type Scope int

const (
	ScopeSession Scope = iota
	ScopeLifetime
)

func (s Scope) String() string {
	if s == ScopeLifetime {
		return "lifetime"
	}
	return "session"
}

// ParseScope accepts "session" or "lifetime"; empty selects session.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "session":
		return ScopeSession, nil
	case "lifetime":
		return ScopeLifetime, nil
	}
	return ScopeSession, fmt.Errorf("unknown stats scope %q (want session or lifetime)", s)
}
