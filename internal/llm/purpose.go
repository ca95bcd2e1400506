package llm

import "context"

// Purpose says what a request was for. It keys the usage breakdown in the
// event log.
type Purpose string

const (
	// PurposeQuestionGen marks requests for new quiz questions.
	PurposeQuestionGen Purpose = "question-gen"

	// PurposeUnknown is recorded for requests sent without a purpose.
	PurposeUnknown Purpose = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so the logging decorator can attribute the request.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}
