// Package roster manages registered players: the current user, the
// leaderboard, whole-store backups and the admin passcode.
package roster

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
)

var (
	// ErrNoCurrentUser is returned when an operation needs a registered
	// player and none is active.
	ErrNoCurrentUser = errors.New("no current user")

	// ErrUnknownUser is returned by Switch for an ID not in the roster.
	ErrUnknownUser = errors.New("unknown user")
)

// Roster wraps the user-related keys of a state.Repo.
type Roster struct {
	repo    *state.Repo
	version string
	dev     bool
	now     func() time.Time
}

// Option configures a Roster.
type Option func(*Roster)

// WithVersion sets the application version written into backups.
func WithVersion(v string) Option {
	return func(r *Roster) { r.version = v }
}

// WithDevBuild marks the running build as unreleased. Backups are still
// stamped with the configured version, but restores accept any valid
// version.
func WithDevBuild() Option {
	return func(r *Roster) { r.dev = true }
}

// WithClock overrides the backup timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Roster) { r.now = now }
}

// New creates a Roster over repo.
func New(repo *state.Repo, opts ...Option) *Roster {
	r := &Roster{repo: repo, version: DefaultVersion, now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Users returns every registered player in registration order.
func (r *Roster) Users(ctx context.Context) []quiz.User {
	return r.repo.Users(ctx)
}

// Register creates a player, appends them to the roster and makes them
// the current user.
func (r *Roster) Register(ctx context.Context, name string, age int, gender quiz.Gender) (quiz.User, error) {
	u, err := quiz.NewUser(name, age, gender)
	if err != nil {
		return quiz.User{}, err
	}
	if err := r.repo.SaveUsers(ctx, append(r.repo.Users(ctx), u)); err != nil {
		return quiz.User{}, fmt.Errorf("register user: %w", err)
	}
	if err := r.repo.SetCurrentUser(ctx, u); err != nil {
		return quiz.User{}, fmt.Errorf("register user: %w", err)
	}
	slog.Info("user registered", "id", u.ID, "name", u.Name)
	return u, nil
}

// Current returns the active player.
func (r *Roster) Current(ctx context.Context) (quiz.User, bool) {
	return r.repo.CurrentUser(ctx)
}

// Switch makes the roster entry with the given ID the current user.
func (r *Roster) Switch(ctx context.Context, id string) (quiz.User, error) {
	users := r.repo.Users(ctx)
	i := slices.IndexFunc(users, func(u quiz.User) bool { return u.ID == id })
	if i < 0 {
		return quiz.User{}, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	if err := r.repo.SetCurrentUser(ctx, users[i]); err != nil {
		return quiz.User{}, fmt.Errorf("switch user: %w", err)
	}
	return users[i], nil
}

// RecordScore stores score on the current user and on their roster entry.
// Negative scores are clamped to zero.
func (r *Roster) RecordScore(ctx context.Context, score int) (quiz.User, error) {
	u, ok := r.repo.CurrentUser(ctx)
	if !ok {
		return quiz.User{}, ErrNoCurrentUser
	}
	u.Score = max(score, 0)

	users := r.repo.Users(ctx)
	found := false
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			found = true
		}
	}
	if !found {
		users = append(users, u)
	}

	if err := r.repo.SetCurrentUser(ctx, u); err != nil {
		return quiz.User{}, fmt.Errorf("record score: %w", err)
	}
	if err := r.repo.SaveUsers(ctx, users); err != nil {
		return quiz.User{}, fmt.Errorf("record score: %w", err)
	}
	return u, nil
}

// ResetAll empties the leaderboard: the roster, the current user, their
// carried statistics and unlocked achievements.
func (r *Roster) ResetAll(ctx context.Context) error {
	if err := r.repo.SaveUsers(ctx, nil); err != nil {
		return fmt.Errorf("reset roster: %w", err)
	}
	if err := r.repo.ClearCurrentUser(ctx); err != nil {
		return err
	}
	if err := r.repo.ResetLifetimeStats(ctx); err != nil {
		return err
	}
	if err := r.repo.SaveAchievements(ctx, nil); err != nil {
		return fmt.Errorf("reset achievements: %w", err)
	}
	slog.Info("roster reset")
	return nil
}

// ClearAll wipes every stored key. The next read falls back to defaults.
func (r *Roster) ClearAll(ctx context.Context) error {
	return r.repo.Clear(ctx)
}

// Standing is one leaderboard row.
type Standing struct {
	Rank  int
	Badge string
	User  quiz.User
}

// Badge returns the leaderboard icon for a 1-based rank.
func Badge(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏆"
	}
}

// Leaderboard ranks the roster by score, highest first. Ties keep
// registration order.
func (r *Roster) Leaderboard(ctx context.Context) []Standing {
	users := r.repo.Users(ctx)
	slices.SortStableFunc(users, func(a, b quiz.User) int {
		return cmp.Compare(b.Score, a.Score)
	})
	out := make([]Standing, len(users))
	for i, u := range users {
		out[i] = Standing{Rank: i + 1, Badge: Badge(i + 1), User: u}
	}
	return out
}

// AppStats summarizes the store for the admin screen.
type AppStats struct {
	TotalQuestions int `json:"totalQuestions"`
	TotalUsers     int `json:"totalUsers"`
	HighestScore   int `json:"highestScore"`
	AverageScore   int `json:"averageScore"`
}

// Stats computes AppStats. The average is rounded half away from zero.
func (r *Roster) Stats(ctx context.Context) AppStats {
	users := r.repo.Users(ctx)
	st := AppStats{
		TotalQuestions: len(r.repo.Questions(ctx)),
		TotalUsers:     len(users),
	}
	if len(users) == 0 {
		return st
	}
	sum := 0
	for _, u := range users {
		sum += u.Score
		st.HighestScore = max(st.HighestScore, u.Score)
	}
	st.AverageScore = int(math.Round(float64(sum) / float64(len(users))))
	return st
}
