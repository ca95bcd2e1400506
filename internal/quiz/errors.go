package quiz

import (
	"errors"
	"fmt"
)

// ErrInvalid is the sentinel every ValidationError unwraps to.
var ErrInvalid = errors.New("invalid record")

// ValidationError reports which field of a Question or User failed its
// invariant and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
