package store

import (
	"context"
	"errors"
	"time"

	"github.com/alexchase32/lessbuilder/internal/lesson"
)

// ErrNoLesson is returned by RequireLesson when nothing is stored.
var ErrNoLesson = errors.New("no lesson stored")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LessonRepo stores the single current lesson.
type LessonRepo interface {
	// Get returns the stored lesson, or nil if none exists.
	Get(ctx context.Context) (*lesson.Lesson, error)

	// Put validates l and replaces any stored lesson with it.
	Put(ctx context.Context, l *lesson.Lesson) error

	// Clear deletes the stored lesson.
	Clear(ctx context.Context) error
}

// RequireLesson is Get with ErrNoLesson for an empty store.
func RequireLesson(ctx context.Context, repo LessonRepo) (*lesson.Lesson, error) {
	l, err := repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ErrNoLesson
	}
	return l, nil
}

// Session actions.
const (
	SessionStart  = "start"
	SessionFinish = "finish"
	SessionQuit   = "quit"
)

// SessionEventData captures the start or end of a play session.
type SessionEventData struct {
	SessionID    string
	Action       string
	LessonName   string
	Total        int
	BlocksPlayed int
	DurationSecs int
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// BlockEventData captures one completed block.
type BlockEventData struct {
	SessionID string
	Index     int
	BlockID   int64
	BlockType string
	Score     int
	Expired   bool
	Skipped   bool
}

// BlockEvent is a stored block event.
type BlockEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	BlockEventData
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

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendSessionEvent records a session start, finish or quit.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendBlockEvent records a completed block.
	AppendBlockEvent(ctx context.Context, data BlockEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentSessions returns session events, newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)

	// SessionBlocks returns the block events of one session in play order.
	SessionBlocks(ctx context.Context, sessionID string) ([]BlockEvent, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
}
