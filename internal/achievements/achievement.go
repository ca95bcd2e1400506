// Package achievements evaluates which achievements a set of game
// statistics newly unlocks.
package achievements

import (
	"time"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// ID identifies an achievement definition.
type ID string

const (
	FirstCorrect  ID = "first_correct"
	StreakMaster  ID = "streak_master"
	SpeedDemon    ID = "speed_demon"
	Perfectionist ID = "perfectionist"
	Scholar       ID = "scholar"
	HighScorer    ID = "high_scorer"
)

// Achievement is a definition plus, for evaluation results, the instant it
// was unlocked.
type Achievement struct {
	ID          ID
	Title       string
	Description string
	Icon        string
	Condition   func(quiz.GameStats) bool

	// UnlockedAt is zero on definitions and set on evaluation results.
	UnlockedAt time.Time
}

var definitions = []Achievement{
	{
		ID:          FirstCorrect,
		Title:       "The Right Start",
		Description: "Answer your first question correctly",
		Icon:        "✅",
		Condition:   func(s quiz.GameStats) bool { return s.CorrectAnswers >= 1 },
	},
	{
		ID:          StreakMaster,
		Title:       "Streak Master",
		Description: "Answer 5 questions correctly in a row",
		Icon:        "🔥",
		Condition:   func(s quiz.GameStats) bool { return s.Streak >= 5 },
	},
	{
		ID:          SpeedDemon,
		Title:       "Speed Demon",
		Description: "Keep your average answer time under 3 seconds",
		Icon:        "⚡",
		Condition:   func(s quiz.GameStats) bool { return s.AverageTime > 0 && s.AverageTime < 3000 },
	},
	{
		ID:          Perfectionist,
		Title:       "Perfectionist",
		Description: "Answer every question right in a session of at least 3",
		Icon:        "🎯",
		Condition: func(s quiz.GameStats) bool {
			return s.QuestionsAnswered >= 3 && s.CorrectAnswers == s.QuestionsAnswered
		},
	},
	{
		ID:          Scholar,
		Title:       "Scholar",
		Description: "Reach 50 correct answers",
		Icon:        "📚",
		Condition:   func(s quiz.GameStats) bool { return s.CorrectAnswers >= 50 },
	},
	{
		ID:          HighScorer,
		Title:       "High Scorer",
		Description: "Reach a score of 200",
		Icon:        "⭐",
		Condition:   func(s quiz.GameStats) bool { return s.CurrentScore >= 200 },
	},
}

// Defaults returns the built-in definitions in declaration order. The
// returned slice is a copy.
func Defaults() []Achievement {
	return append([]Achievement(nil), definitions...)
}

// Lookup finds a built-in definition by ID.
func Lookup(id ID) (Achievement, bool) {
	for _, a := range definitions {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
