package roster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/achievements"
	"github.com/facebookverify2025-dot/history-vault-ai/internal/quiz"
)

// DefaultVersion is written into backups when no build version is known.
const DefaultVersion = "1.0.0"

var (
	// ErrMalformedBackup is returned when a backup cannot be decoded.
	ErrMalformedBackup = errors.New("malformed backup")

	// ErrIncompatibleBackup is returned when a backup's major version
	// differs from the running application's.
	ErrIncompatibleBackup = errors.New("incompatible backup version")
)

// Backup is the full-store export format.
type Backup struct {
	Questions    []quiz.Question         `json:"questions"`
	Users        []quiz.User             `json:"users"`
	Achievements []achievements.Unlocked `json:"achievements"`
	Timestamp    time.Time               `json:"timestamp"`
	AppVersion   string                  `json:"appVersion"`
}

// Backup writes the question bank, roster and achievements as indented
// JSON.
func (r *Roster) Backup(ctx context.Context, w io.Writer) error {
	b := Backup{
		Questions:    nonNil(r.repo.Questions(ctx)),
		Users:        nonNil(r.repo.Users(ctx)),
		Achievements: nonNil(r.repo.Achievements(ctx)),
		Timestamp:    r.now().UTC(),
		AppVersion:   r.version,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}

// Restore replaces the question bank, roster and achievements with the
// contents of a backup. The current user is cleared unless they are in
// the restored roster. Invalid questions and users are skipped.
func (r *Roster) Restore(ctx context.Context, rd io.Reader) (Backup, error) {
	var b Backup
	if err := json.NewDecoder(rd).Decode(&b); err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	running := r.version
	if r.dev {
		running = ""
	}
	if err := checkVersion(b.AppVersion, running); err != nil {
		return Backup{}, err
	}

	b.Questions = keepValid(b.Questions, quiz.Question.Validate)
	b.Users = keepValid(b.Users, quiz.User.Validate)

	if err := r.repo.SaveQuestions(ctx, b.Questions); err != nil {
		return Backup{}, fmt.Errorf("restore questions: %w", err)
	}
	if err := r.repo.SaveUsers(ctx, b.Users); err != nil {
		return Backup{}, fmt.Errorf("restore users: %w", err)
	}
	if err := r.repo.SaveAchievements(ctx, b.Achievements); err != nil {
		return Backup{}, fmt.Errorf("restore achievements: %w", err)
	}

	if cur, ok := r.repo.CurrentUser(ctx); ok {
		stillThere := false
		for _, u := range b.Users {
			if u.ID == cur.ID {
				stillThere = true
				if err := r.repo.SetCurrentUser(ctx, u); err != nil {
					return Backup{}, err
				}
			}
		}
		if !stillThere {
			if err := r.repo.ClearCurrentUser(ctx); err != nil {
				return Backup{}, err
			}
		}
	}

	slog.Info("backup restored",
		"version", b.AppVersion,
		"questions", len(b.Questions),
		"users", len(b.Users),
	)
	return b, nil
}

// checkVersion accepts a backup whose semantic-version major matches the
// running build. An empty or invalid running version accepts any valid
// backup version.
func checkVersion(backup, running string) error {
	bv := canonical(backup)
	if !semver.IsValid(bv) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrIncompatibleBackup, backup)
	}
	rv := canonical(running)
	if !semver.IsValid(rv) {
		return nil
	}
	if semver.Major(bv) != semver.Major(rv) {
		return fmt.Errorf("%w: backup %s, app %s", ErrIncompatibleBackup, backup, running)
	}
	return nil
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func keepValid[T any](in []T, validate func(T) error) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if err := validate(v); err != nil {
			slog.Warn("restore skipped invalid record", "err", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
