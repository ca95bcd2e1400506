// Package game hosts a quiz session for the current player. It drives a
// session.Engine and persists what the engine produces: the player's
// score, carried statistics, unlocked achievements and session records.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/roster"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/session"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/shuffle"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

// ErrNotStarted is returned by operations that need a running session.
var ErrNotStarted = errors.New("no session started")

// Deps are the collaborators a Game persists through.
type Deps struct {
	Repo   *state.Repo
	Roster *roster.Roster

	// Events receives one record per finished or abandoned session.
	// Optional.
	Events store.EventRepo
}

// Game is one player's run of the quiz. It is not safe for concurrent use.
type Game struct {
	deps       Deps
	eval       *achievements.Evaluator
	engineOpts []session.Option

	user     quiz.User
	engine   *session.Engine
	recorded bool
}

// Option configures a Game.
type Option func(*Game)

// WithEvaluator replaces the default achievement evaluator.
func WithEvaluator(e *achievements.Evaluator) Option {
	return func(g *Game) { g.eval = e }
}

// WithScope selects the stats scope of the engine.
func WithScope(s session.Scope) Option {
	return func(g *Game) { g.engineOpts = append(g.engineOpts, session.WithScope(s)) }
}

// WithEngineOptions passes options straight to session.New.
func WithEngineOptions(opts ...session.Option) Option {
	return func(g *Game) { g.engineOpts = append(g.engineOpts, opts...) }
}

// WithShuffler fixes the engine's shuffler, for reproducible orders.
func WithShuffler(s *shuffle.Shuffler) Option {
	return WithEngineOptions(session.WithShuffler(s))
}

// New creates a Game.
func New(deps Deps, opts ...Option) *Game {
	g := &Game{deps: deps}
	for _, o := range opts {
		o(g)
	}
	if g.eval == nil {
		g.eval = achievements.NewEvaluator()
	}
	return g
}

// Outcome is the result of one answer.
type Outcome struct {
	session.AnswerResult

	// Unlocked lists the achievements this answer earned, in
	// declaration order.
	Unlocked []achievements.Achievement
}

// Start begins a session for the current user over the stored question
// bank. The engine carries the user's score and lifetime record.
func (g *Game) Start(ctx context.Context) (session.State, error) {
	u, ok := g.deps.Roster.Current(ctx)
	if !ok {
		return session.State{}, roster.ErrNoCurrentUser
	}
	carry := g.deps.Repo.LifetimeStats(ctx, u.ID)
	carry.CurrentScore = u.Score

	g.user = u
	g.engine = session.New(carry, g.engineOpts...)
	g.recorded = false

	st := g.engine.Start(g.deps.Repo.Questions(ctx))
	slog.Info("session started", "session", g.engine.ID(), "user", u.ID, "questions", st.Total, "scope", g.engine.Scope())
	if st.Phase == session.PhaseEmpty {
		return st, nil
	}
	return st, g.saveLifetime(ctx)
}

// Engine exposes the running engine for rendering. Nil before Start.
func (g *Game) Engine() *session.Engine { return g.engine }

// User returns the player as of the last persisted score.
func (g *Game) User() quiz.User { return g.user }

// Answer submits choice for the current question. The bool is false when
// the engine ignored the answer.
func (g *Game) Answer(ctx context.Context, choice string) (Outcome, bool, error) {
	if g.engine == nil {
		return Outcome{}, false, ErrNotStarted
	}
	res, ok := g.engine.SubmitAnswer(choice)
	if !ok {
		return Outcome{}, false, nil
	}
	out := Outcome{AnswerResult: res}

	u, err := g.deps.Roster.RecordScore(ctx, res.Score)
	if err != nil {
		return out, true, err
	}
	g.user = u
	if err := g.saveLifetime(ctx); err != nil {
		return out, true, err
	}

	records := g.deps.Repo.Achievements(ctx)
	out.Unlocked = g.eval.Evaluate(res.Stats, achievements.SetFor(records, u.ID))
	if len(out.Unlocked) > 0 {
		if err := g.deps.Repo.SaveAchievements(ctx, achievements.Merge(records, u.ID, out.Unlocked)); err != nil {
			return out, true, fmt.Errorf("save achievements: %w", err)
		}
		for _, a := range out.Unlocked {
			slog.Info("achievement unlocked", "user", u.ID, "achievement", a.ID)
		}
	}
	return out, true, nil
}

// Advance moves to the next question and records the session when it
// completes.
func (g *Game) Advance(ctx context.Context) (session.State, error) {
	if g.engine == nil {
		return session.State{}, ErrNotStarted
	}
	st := g.engine.Advance()
	if st.Phase == session.PhaseCompleted {
		return st, g.record(ctx, store.ActionCompleted)
	}
	return st, nil
}

// Retry abandons the running session, if any, and replays the pool.
func (g *Game) Retry(ctx context.Context) (session.State, error) {
	if g.engine == nil {
		return session.State{}, ErrNotStarted
	}
	if err := g.Abandon(ctx); err != nil {
		return g.engine.State(), err
	}
	st := g.engine.Reset()
	g.recorded = false
	if st.Phase == session.PhaseEmpty {
		return st, nil
	}
	return st, g.saveLifetime(ctx)
}

// Abandon records an unfinished session that has at least one answer.
// It is a no-op otherwise.
func (g *Game) Abandon(ctx context.Context) error {
	if g.engine == nil || g.engine.State().Phase != session.PhaseInProgress {
		return nil
	}
	if g.engine.Summary().QuestionsAnswered == 0 {
		return nil
	}
	return g.record(ctx, store.ActionAbandoned)
}

func (g *Game) saveLifetime(ctx context.Context) error {
	if err := g.deps.Repo.SaveLifetimeStats(ctx, g.user.ID, g.engine.Lifetime()); err != nil {
		return fmt.Errorf("save lifetime stats: %w", err)
	}
	return nil
}

func (g *Game) record(ctx context.Context, action string) error {
	if g.recorded {
		return nil
	}
	g.recorded = true

	sum := g.engine.Summary()
	slog.Info("session ended",
		"session", sum.SessionID,
		"action", action,
		"points", sum.PointsEarned,
		"correct", sum.CorrectAnswers,
		"answered", sum.QuestionsAnswered,
	)
	if g.deps.Events == nil {
		return nil
	}
	err := g.deps.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:         sum.SessionID,
		UserID:            g.user.ID,
		UserName:          g.user.Name,
		Action:            action,
		StartedAt:         sum.StartedAt,
		EndedAt:           sum.EndedAt,
		TotalQuestions:    sum.TotalQuestions,
		QuestionsAnswered: sum.QuestionsAnswered,
		CorrectAnswers:    sum.CorrectAnswers,
		PointsEarned:      sum.PointsEarned,
		FinalScore:        sum.FinalScore,
		AverageTimeMs:     sum.AverageTimeMs,
	})
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}
