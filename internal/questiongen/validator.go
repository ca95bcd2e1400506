package questiongen

import "fmt"

// Validator checks one generated candidate.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier such as "structural" or "dedup".
	Name() string

	// Validate returns nil if the candidate passes. input.Existing already
	// includes the candidates accepted earlier in the same batch.
	Validate(c Candidate, input Input) *ValidationError
}

// ValidationError describes why a candidate failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether asking again is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
