package roster

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/facebookverify2025-dot/history-vault-ai/internal/state"
)

// Passcode length bounds, in characters.
const (
	MinPinLen = 4
	MaxPinLen = 32
)

// ErrWrongPin is returned by CheckPin for a passcode that does not match.
var ErrWrongPin = errors.New("wrong admin passcode")

// HasPin reports whether an admin passcode is set.
func (r *Roster) HasPin(ctx context.Context) bool {
	_, err := r.repo.AdminPinHash(ctx)
	return err == nil
}

// SetPin hashes and stores a new admin passcode.
func (r *Roster) SetPin(ctx context.Context, pin string) error {
	if n := utf8.RuneCountInString(pin); n < MinPinLen || n > MaxPinLen {
		return fmt.Errorf("passcode must be %d to %d characters", MinPinLen, MaxPinLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passcode: %w", err)
	}
	return r.repo.SetAdminPinHash(ctx, string(hash))
}

// CheckPin verifies pin against the stored hash. It succeeds when no
// passcode is set.
func (r *Roster) CheckPin(ctx context.Context, pin string) error {
	hash, err := r.repo.AdminPinHash(ctx)
	if errors.Is(err, state.ErrNoAdminPin) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongPin
		}
		return fmt.Errorf("check passcode: %w", err)
	}
	return nil
}

// ClearPin removes the admin passcode.
func (r *Roster) ClearPin(ctx context.Context) error {
	return r.repo.ClearAdminPin(ctx)
}
