// Package state reads and writes the typed snapshots History Vault keeps in
// its key-value store. Every value is a JSON document overwritten whole.
//
// Reads never fail on bad data: a missing or unreadable snapshot falls back
// to its default and, when the data was actually corrupt, a Notice is
// recorded for the UI to show.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/store"
)

// Storage keys.
const (
	KeyCurrentUser   = "currentUser"
	KeyUsers         = "users"
	KeyQuestions     = "questions"
	KeyAchievements  = "achievements"
	KeyLifetimeStats = "lifetimeStats"
	KeyAdminPin      = "adminPin"
)

// Notice is a user-visible message about data that could not be loaded.
type Notice struct {
	Key     string
	Message string
	At      time.Time
}

// Repo is the typed view over a store.KV.
type Repo struct {
	kv store.KV

	mu      sync.Mutex
	notices []Notice
}

// New wraps kv.
func New(kv store.KV) *Repo {
	return &Repo{kv: kv}
}

// KV exposes the underlying adapter.
func (r *Repo) KV() store.KV { return r.kv }

// Notices returns the notices recorded so far and clears them.
func (r *Repo) Notices() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}

// AddNotice records a notice raised outside the repo, such as a database
// that could not be opened.
func (r *Repo) AddNotice(key, message string) {
	r.notice(key, "%s", message)
}

func (r *Repo) notice(key, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Warn("state snapshot unusable", "key", key, "reason", msg)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Key: key, Message: msg, At: time.Now()})
}

// load decodes key into a T. ok is false when the key is absent or could
// not be used; a notice is recorded in the latter case.
func load[T any](ctx context.Context, r *Repo, key string) (v T, ok bool) {
	raw, present, err := r.kv.Get(ctx, key)
	if err != nil {
		r.notice(key, "could not read saved %s: %v", key, err)
		return v, false
	}
	if !present {
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		r.notice(key, "saved %s is corrupt and was ignored", key)
		var zero T
		return zero, false
	}
	return v, true
}

func save(ctx context.Context, r *Repo, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	slog.Debug("state saved", "key", key, "bytes", len(b))
	return nil
}

// Questions returns the stored question list, or the built-in defaults if
// none is stored or it is unreadable. Individual invalid records are
// dropped.
func (r *Repo) Questions(ctx context.Context) []quiz.Question {
	qs, ok := load[[]quiz.Question](ctx, r, KeyQuestions)
	if !ok {
		return quiz.DefaultQuestions()
	}
	valid := qs[:0]
	dropped := 0
	for _, q := range qs {
		if err := q.Validate(); err != nil {
			dropped++
			continue
		}
		valid = append(valid, q)
	}
	if dropped > 0 {
		r.notice(KeyQuestions, "%d saved question(s) were invalid and skipped", dropped)
	}
	return valid
}

// SaveQuestions replaces the stored question list.
func (r *Repo) SaveQuestions(ctx context.Context, qs []quiz.Question) error {
	if qs == nil {
		qs = []quiz.Question{}
	}
	return save(ctx, r, KeyQuestions, qs)
}

// Users returns the roster in registration order.
func (r *Repo) Users(ctx context.Context) []quiz.User {
	users, _ := load[[]quiz.User](ctx, r, KeyUsers)
	return users
}

// SaveUsers replaces the roster.
func (r *Repo) SaveUsers(ctx context.Context, users []quiz.User) error {
	if users == nil {
		users = []quiz.User{}
	}
	return save(ctx, r, KeyUsers, users)
}

// CurrentUser returns the active user, if one is set.
func (r *Repo) CurrentUser(ctx context.Context) (quiz.User, bool) {
	u, ok := load[quiz.User](ctx, r, KeyCurrentUser)
	if !ok {
		return quiz.User{}, false
	}
	if err := u.Validate(); err != nil {
		r.notice(KeyCurrentUser, "saved current user is invalid: %v", err)
		return quiz.User{}, false
	}
	return u, true
}

// SetCurrentUser stores u as the active user.
func (r *Repo) SetCurrentUser(ctx context.Context, u quiz.User) error {
	return save(ctx, r, KeyCurrentUser, u)
}

// ClearCurrentUser removes the active user.
func (r *Repo) ClearCurrentUser(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyCurrentUser); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// Achievements returns every unlocked achievement record.
func (r *Repo) Achievements(ctx context.Context) []achievements.Unlocked {
	recs, _ := load[[]achievements.Unlocked](ctx, r, KeyAchievements)
	return recs
}

// SaveAchievements replaces the unlocked achievement records.
func (r *Repo) SaveAchievements(ctx context.Context, recs []achievements.Unlocked) error {
	if recs == nil {
		recs = []achievements.Unlocked{}
	}
	return save(ctx, r, KeyAchievements, recs)
}

// LifetimeStats returns the carried statistics for userID. Unknown users
// start from zero.
func (r *Repo) LifetimeStats(ctx context.Context, userID string) quiz.GameStats {
	all, _ := load[map[string]quiz.GameStats](ctx, r, KeyLifetimeStats)
	return all[userID]
}

// SaveLifetimeStats stores the carried statistics for userID.
func (r *Repo) SaveLifetimeStats(ctx context.Context, userID string, stats quiz.GameStats) error {
	all, _ := load[map[string]quiz.GameStats](ctx, r, KeyLifetimeStats)
	if all == nil {
		all = make(map[string]quiz.GameStats)
	}
	all[userID] = stats
	return save(ctx, r, KeyLifetimeStats, all)
}

// ResetLifetimeStats drops every user's carried statistics.
func (r *Repo) ResetLifetimeStats(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyLifetimeStats); err != nil {
		return fmt.Errorf("reset lifetime stats: %w", err)
	}
	return nil
}

// ErrNoAdminPin is returned by AdminPinHash when no passcode is set.
var ErrNoAdminPin = errors.New("no admin passcode set")

// AdminPinHash returns the stored passcode hash.
func (r *Repo) AdminPinHash(ctx context.Context) (string, error) {
	raw, ok, err := r.kv.Get(ctx, KeyAdminPin)
	if err != nil {
		return "", fmt.Errorf("read admin passcode: %w", err)
	}
	if !ok || raw == "" {
		return "", ErrNoAdminPin
	}
	return raw, nil
}

// SetAdminPinHash stores a passcode hash.
func (r *Repo) SetAdminPinHash(ctx context.Context, hash string) error {
	if err := r.kv.Set(ctx, KeyAdminPin, hash); err != nil {
		return fmt.Errorf("save admin passcode: %w", err)
	}
	return nil
}

// ClearAdminPin removes the passcode.
func (r *Repo) ClearAdminPin(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyAdminPin); err != nil {
		return fmt.Errorf("clear admin passcode: %w", err)
	}
	return nil
}

// Clear wipes every stored key.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.kv.Clear(ctx); err != nil {
		return fmt.Errorf("clear storage: %w", err)
	}
	slog.Info("storage cleared")
	return nil
}
