package achievements

import (
	"testing"
	"time"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestEvaluator() *Evaluator {
	return NewEvaluator(WithClock(func() time.Time { return fixedNow }))
}

func ids(as []Achievement) []ID {
	var out []ID
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}

func equalIDs(a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		stats    quiz.GameStats
		unlocked Set
		want     []ID
	}{
		{
			name:  "nothing yet",
			stats: quiz.GameStats{},
			want:  nil,
		},
		{
			name:  "first correct only",
			stats: quiz.GameStats{CorrectAnswers: 1, Streak: 1, AverageTime: 0, QuestionsAnswered: 1, CurrentScore: 0},
			want:  []ID{FirstCorrect},
		},
		{
			name:  "perfect fast session in declaration order",
			stats: quiz.GameStats{CorrectAnswers: 3, QuestionsAnswered: 3, Streak: 3, AverageTime: 2000, CurrentScore: 45},
			want:  []ID{FirstCorrect, SpeedDemon, Perfectionist},
		},
		{
			name:     "already unlocked never refires",
			stats:    quiz.GameStats{CorrectAnswers: 3, QuestionsAnswered: 3, Streak: 3, AverageTime: 2000, CurrentScore: 45},
			unlocked: NewSet(FirstCorrect, SpeedDemon),
			want:     []ID{Perfectionist},
		},
		{
			name:  "everything",
			stats: quiz.GameStats{CorrectAnswers: 50, QuestionsAnswered: 50, Streak: 50, AverageTime: 1500, CurrentScore: 750},
			want:  []ID{FirstCorrect, StreakMaster, SpeedDemon, Perfectionist, Scholar, HighScorer},
		},
		{
			name:  "streak threshold",
			stats: quiz.GameStats{CorrectAnswers: 5, QuestionsAnswered: 6, Streak: 5, AverageTime: 5000},
			want:  []ID{FirstCorrect, StreakMaster},
		},
		{
			name:  "speed needs exactly under 3000",
			stats: quiz.GameStats{QuestionsAnswered: 1, AverageTime: 3000},
			want:  nil,
		},
		{
			name:  "perfectionist needs three",
			stats: quiz.GameStats{CorrectAnswers: 2, QuestionsAnswered: 2, Streak: 2, AverageTime: 4000},
			want:  []ID{FirstCorrect},
		},
		{
			name:  "high score",
			stats: quiz.GameStats{CurrentScore: 200},
			want:  []ID{HighScorer},
		},
	}

	e := newTestEvaluator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Evaluate(tt.stats, tt.unlocked)
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Evaluate() = %v, want %v", ids(got), tt.want)
			}
			for _, a := range got {
				if !a.UnlockedAt.Equal(fixedNow) {
					t.Errorf("%s unlockedAt = %v, want %v", a.ID, a.UnlockedAt, fixedNow)
				}
			}
		})
	}
}

func TestEvaluateIsPure(t *testing.T) {
	e := newTestEvaluator()
	stats := quiz.GameStats{CorrectAnswers: 1, QuestionsAnswered: 1}
	unlocked := NewSet()
	first := e.Evaluate(stats, unlocked)
	second := e.Evaluate(stats, unlocked)
	if !equalIDs(ids(first), ids(second)) {
		t.Errorf("repeat evaluation differs: %v vs %v", ids(first), ids(second))
	}
	if len(unlocked) != 0 {
		t.Error("Evaluate must not modify the unlocked set")
	}
	for _, d := range e.Definitions() {
		if !d.UnlockedAt.IsZero() {
			t.Errorf("definition %s was stamped", d.ID)
		}
	}
}

func TestDefaultsOrderAndCopy(t *testing.T) {
	want := []ID{FirstCorrect, StreakMaster, SpeedDemon, Perfectionist, Scholar, HighScorer}
	defs := Defaults()
	if !equalIDs(ids(defs), want) {
		t.Fatalf("Defaults() = %v, want %v", ids(defs), want)
	}
	defs[0].Title = "changed"
	if a, _ := Lookup(FirstCorrect); a.Title != "The Right Start" {
		t.Error("Defaults() must return a copy")
	}
}

func TestWithDefinitions(t *testing.T) {
	custom := []Achievement{{
		ID:        "veteran",
		Title:     "Veteran",
		Condition: func(s quiz.GameStats) bool { return s.TotalSessions >= 10 },
	}}
	e := NewEvaluator(WithDefinitions(custom))
	if got := e.Evaluate(quiz.GameStats{TotalSessions: 10, CorrectAnswers: 5}, nil); !equalIDs(ids(got), []ID{"veteran"}) {
		t.Errorf("Evaluate() = %v, want [veteran]", ids(got))
	}
}
