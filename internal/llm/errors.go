package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit is a 429 from the provider.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is output that is not JSON or does not match the
// requested schema. Content holds what the model sent.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers every other provider failure: outages,
// bad credentials, network errors.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a response cut off at Request.MaxTokens.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// statusError maps an SDK error carrying an HTTP status onto the error
// types above.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// Kind groups failures by what the person asking for questions can do
// about them.
type Kind int

const (
	KindOther Kind = iota
	KindRateLimited
	KindUnavailable
	KindBadOutput
	KindCanceled
)

// KindOf classifies err.
func KindOf(err error) Kind {
	var (
		rl      *ErrRateLimit
		inv     *ErrInvalidResponse
		trunc   *ErrMaxTokensExceeded
		unavail *ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &rl):
		return KindRateLimited
	case errors.As(err, &inv), errors.As(err, &trunc):
		return KindBadOutput
	case errors.As(err, &unavail):
		return KindUnavailable
	}
	return KindOther
}

// Explain describes a failed generation in a sentence for the admin
// screen and the CLI.
func Explain(err error) string {
	switch KindOf(err) {
	case KindRateLimited:
		return "The model provider is rate limiting requests. Try again in a minute."
	case KindUnavailable:
		return "The model provider could not be reached. Check the API key and the network."
	case KindBadOutput:
		return "The model answered in an unexpected shape. Try again or ask for fewer questions."
	case KindCanceled:
		return "The model did not answer in time."
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
