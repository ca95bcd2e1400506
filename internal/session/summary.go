package session

import "time"

// Grade is the result tier shown at the end of a session.
type Grade int

const (
	GradeStudy Grade = iota
	GradeBronze
	GradeSilver
	GradeGold
)

// Title returns the headline for the grade.
func (g Grade) Title() string {
	switch g {
	case GradeGold:
		return "Outstanding!"
	case GradeSilver:
		return "Great work!"
	case GradeBronze:
		return "Good effort!"
	}
	return "Keep studying!"
}

// Medal returns the grade's icon.
func (g Grade) Medal() string {
	switch g {
	case GradeGold:
		return "🥇"
	case GradeSilver:
		return "🥈"
	case GradeBronze:
		return "🥉"
	}
	return "📚"
}

// GradeFor ranks points earned over n questions. Thresholds are 8, 6 and 4
// points per question.
func GradeFor(points, n int) Grade {
	switch {
	case n <= 0:
		return GradeStudy
	case points >= n*8:
		return GradeGold
	case points >= n*6:
		return GradeSilver
	case points >= n*4:
		return GradeBronze
	}
	return GradeStudy
}

// Summary describes one session for the summary screen and the history
// log. Counters cover only this session whatever the stats scope.
type Summary struct {
	SessionID         string
	StartedAt         time.Time
	EndedAt           time.Time
	TotalQuestions    int
	QuestionsAnswered int
	CorrectAnswers    int
	PointsEarned      int
	FinalScore        int
	AverageTimeMs     float64
	Grade             Grade
}

// Accuracy is the share of answered questions that were correct.
func (s Summary) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered)
}

// Duration is the wall time of the session; zero until it has ended.
func (s Summary) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Summary reports the current session. It may be called at any point; an
// abandoned session simply has a zero EndedAt.
func (e *Engine) Summary() Summary {
	return Summary{
		SessionID:         e.id,
		StartedAt:         e.startedAt,
		EndedAt:           e.endedAt,
		TotalQuestions:    len(e.questions),
		QuestionsAnswered: e.cur.answered,
		CorrectAnswers:    e.cur.correct,
		PointsEarned:      e.cur.points,
		FinalScore:        e.base.CurrentScore + e.cur.points,
		AverageTimeMs:     e.cur.meanMs(),
		Grade:             GradeFor(e.cur.points, len(e.questions)),
	}
}
