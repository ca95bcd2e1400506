// Package session implements the quiz session engine: it shuffles a
// question pool, serves one question at a time, scores answers and keeps
// the streak, accuracy and timing statistics.
//
// The engine is synchronous and single-threaded. Answering and advancing
// are separate calls so the host owns any display delay between them.
package session

import (
	"time"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/shuffle"
	"github.com/google/uuid"
)

// Scoring constants.
const (
	FastAnswerPoints = 15
	SlowAnswerPoints = 10
	FastAnswerWindow = 10 * time.Second
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithShuffler sets the random source used for question and choice order.
func WithShuffler(s *shuffle.Shuffler) Option {
	return func(e *Engine) { e.shuffler = s }
}

// WithScope selects session- or lifetime-scoped counters.
func WithScope(s Scope) Option {
	return func(e *Engine) { e.scope = s }
}

// tally holds the counters of the session being played.
type tally struct {
	answered    int
	correct     int
	points      int
	streak      int
	brokeStreak bool
	samplesMs   []int64
}

func (t tally) meanMs() float64 {
	if len(t.samplesMs) == 0 {
		return 0
	}
	var sum int64
	for _, s := range t.samplesMs {
		sum += s
	}
	return float64(sum) / float64(len(t.samplesMs))
}

// Engine runs one playthrough at a time over a question pool.
type Engine struct {
	now      func() time.Time
	shuffler *shuffle.Shuffler
	scope    Scope

	pool      []quiz.Question
	questions []SessionQuestion
	phase     Phase
	index     int
	answered  bool

	id            string
	startedAt     time.Time
	endedAt       time.Time
	questionStart time.Time

	// base is everything carried in from before the current session:
	// the user's score, session count and lifetime counters.
	base quiz.GameStats
	cur  tally
}

// New creates an engine. carry is the user's persisted lifetime record;
// its CurrentScore is the score carried into every session.
func New(carry quiz.GameStats, opts ...Option) *Engine {
	e := &Engine{
		now:  time.Now,
		base: carry,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.shuffler == nil {
		e.shuffler = shuffle.New()
	}
	return e
}

// Start begins a new session over questions. Question order is shuffled,
// then each question's choices are shuffled independently. An empty pool
// moves the engine to PhaseEmpty.
func (e *Engine) Start(questions []quiz.Question) State {
	e.pool = append([]quiz.Question(nil), questions...)
	return e.begin()
}

// Reset replays the original pool in a fresh order. The score is kept and
// the session counters start again from zero.
func (e *Engine) Reset() State {
	if e.phase == PhaseNotStarted {
		return e.State()
	}
	return e.begin()
}

func (e *Engine) begin() State {
	e.base = e.Lifetime()
	e.cur = tally{}
	e.index = 0
	e.answered = false
	e.endedAt = time.Time{}
	e.id = uuid.NewString()

	if len(e.pool) == 0 {
		e.questions = nil
		e.phase = PhaseEmpty
		return e.State()
	}

	order := shuffle.Shuffle(e.shuffler, e.pool)
	e.questions = make([]SessionQuestion, len(order))
	for i, q := range order {
		e.questions[i] = SessionQuestion{Question: q.WithChoices(shuffle.Shuffle(e.shuffler, q.Choices))}
	}

	e.base.TotalSessions++
	e.phase = PhaseInProgress
	e.startedAt = e.now()
	e.questionStart = e.startedAt
	return e.State()
}

// SubmitAnswer scores choice against the current question. It only acts
// while a question is waiting for an answer; otherwise it returns false and
// changes nothing.
func (e *Engine) SubmitAnswer(choice string) (AnswerResult, bool) {
	if e.phase != PhaseInProgress || e.answered {
		return AnswerResult{}, false
	}

	q := e.questions[e.index]
	taken := e.now().Sub(e.questionStart)
	takenMs := taken.Milliseconds()
	e.cur.samplesMs = append(e.cur.samplesMs, takenMs)

	correct := q.IsCorrect(choice)
	points := 0
	if correct {
		e.cur.correct++
		e.cur.streak++
		points = SlowAnswerPoints
		if taken < FastAnswerWindow {
			points = FastAnswerPoints
		}
		e.cur.points += points
	} else {
		e.cur.streak = 0
		e.cur.brokeStreak = true
	}
	e.cur.answered++
	e.answered = true

	stats := e.Stats()
	return AnswerResult{
		Correct:       correct,
		Choice:        choice,
		CorrectAnswer: q.CorrectAnswer,
		Points:        points,
		TimeTakenMs:   takenMs,
		Score:         stats.CurrentScore,
		Stats:         stats,
	}, true
}

// Advance moves past an answered question. After the last question the
// session completes. Before an answer it does nothing.
func (e *Engine) Advance() State {
	if e.phase != PhaseInProgress || !e.answered {
		return e.State()
	}
	if e.IsLast() {
		e.phase = PhaseCompleted
		e.endedAt = e.now()
		return e.State()
	}
	e.index++
	e.answered = false
	e.questionStart = e.now()
	return e.State()
}

// IsLast reports whether the current question is the final one.
func (e *Engine) IsLast() bool {
	return e.index == len(e.questions)-1
}

// Current returns the question being shown, if any.
func (e *Engine) Current() (SessionQuestion, bool) {
	if e.phase != PhaseInProgress {
		return SessionQuestion{}, false
	}
	return e.questions[e.index], true
}

// Questions returns the shuffled session questions.
func (e *Engine) Questions() []SessionQuestion {
	return append([]SessionQuestion(nil), e.questions...)
}

// State returns the engine position.
func (e *Engine) State() State {
	return State{
		Phase:    e.phase,
		Index:    e.index,
		Total:    len(e.questions),
		Answered: e.answered,
	}
}

// ID identifies the current session; it changes on every Start and Reset.
func (e *Engine) ID() string { return e.id }

// Scope returns the configured counter scope.
func (e *Engine) Scope() Scope { return e.scope }

// Stats returns the statistics the achievement evaluator sees. In session
// scope the counters cover only the current session; the score and the
// session count are always carried.
func (e *Engine) Stats() quiz.GameStats {
	if e.scope == ScopeLifetime {
		return e.Lifetime()
	}
	return quiz.GameStats{
		CurrentScore:      e.base.CurrentScore + e.cur.points,
		Streak:            e.cur.streak,
		QuestionsAnswered: e.cur.answered,
		CorrectAnswers:    e.cur.correct,
		AverageTime:       e.cur.meanMs(),
		TotalSessions:     e.base.TotalSessions,
	}
}

// Lifetime folds the current session into the carried record. This is the
// value to persist regardless of scope.
func (e *Engine) Lifetime() quiz.GameStats {
	out := e.base
	out.CurrentScore += e.cur.points
	out.QuestionsAnswered += e.cur.answered
	out.CorrectAnswers += e.cur.correct

	if n := len(e.cur.samplesMs); n > 0 {
		var sum int64
		for _, s := range e.cur.samplesMs {
			sum += s
		}
		prev := float64(e.base.QuestionsAnswered) * e.base.AverageTime
		out.AverageTime = (prev + float64(sum)) / float64(e.base.QuestionsAnswered+n)
	}

	switch {
	case e.cur.brokeStreak:
		out.Streak = e.cur.streak
	default:
		out.Streak = e.base.Streak + e.cur.streak
	}
	return out
}
