package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session event actions.
const (
	ActionCompleted = "completed"
	ActionAbandoned = "abandoned"
)

// SessionEventData is one finished or abandoned quiz session.
type SessionEventData struct {
	SessionID         string
	UserID            string
	UserName          string
	Action            string
	StartedAt         time.Time
	EndedAt           time.Time
	TotalQuestions    int
	QuestionsAnswered int
	CorrectAnswers    int
	PointsEarned      int
	FinalScore        int
	AverageTimeMs     float64
}

// SessionEvent is a stored session record.
type SessionEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token use for one purpose or one model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendSessionEvent records the outcome of a quiz session.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns session records for userID, newest first.
	// An empty userID matches every user.
	QuerySessionEvents(ctx context.Context, userID string, opts QueryOpts) ([]SessionEvent, error)

	// DeleteSessionEvents removes all session records.
	DeleteSessionEvents(ctx context.Context) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
