package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // LLM events only; empty means any
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

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls by purpose or by model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// AnswerEventData captures one graded round.
type AnswerEventData struct {
	SessionID     string
	Item          string
	Category      string
	Modality      string
	Pool          string
	LearnerAnswer string
	Correct       bool
	Score         *float64
	Fault         string
	MasteryBefore int
	MasteryAfter  int
	NextDue       string
	TimeMs        int
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID      string
	Action         string // "start" or "end"
	ItemsServed    int
	CorrectAnswers int
	DurationSecs   int
	DueAtStart     int
}

// EventRepo provides append and inspection access to events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QueryLLMEvents returns the most recent LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// SessionAnswers returns the answers of one session in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEventData, error)
}
