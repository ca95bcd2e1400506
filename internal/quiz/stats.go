package quiz

// GameStats is the running aggregate a session maintains and the achievement
// evaluator reads. AverageTime is in milliseconds.
type GameStats struct {
	CurrentScore      int     `json:"currentScore"`
	Streak            int     `json:"streak"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	CorrectAnswers    int     `json:"correctAnswers"`
	AverageTime       float64 `json:"averageTime"`
	TotalSessions     int     `json:"totalSessions"`
}

// Accuracy returns the fraction of answered questions that were correct.
func (s GameStats) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered)
}
