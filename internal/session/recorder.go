// Package session records play sessions to the event log: a start event,
// one event per completed block and a finish or quit event.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/logging"
	"github.com/alexchase32/lessbuilder/internal/player"
	"github.com/alexchase32/lessbuilder/internal/store"
)

// Recorder persists one play session. A nil event repo makes every method
// a no-op, so playing never depends on storage.
type Recorder struct {
	events store.EventRepo
	log    *logging.Logger
	now    func() time.Time

	id      string
	lesson  string
	started time.Time
	blocks  int
	ended   bool
}

// NewRecorder creates a recorder writing to events.
func NewRecorder(events store.EventRepo, log *logging.Logger) *Recorder {
	if log == nil {
		log = logging.Nop()
	}
	return &Recorder{events: events, log: log, now: time.Now}
}

// ID returns the session id, empty before Begin.
func (r *Recorder) ID() string { return r.id }

// Begin starts a new session for l and records the start event.
func (r *Recorder) Begin(ctx context.Context, l *lesson.Lesson) {
	r.id = uuid.New().String()
	r.started = r.now()
	r.blocks = 0
	r.ended = false
	r.lesson = ""
	if l != nil {
		r.lesson = l.Name
	}
	r.append(ctx, store.SessionEventData{
		SessionID:  r.id,
		Action:     store.SessionStart,
		LessonName: r.lesson,
	})
}

// Observe records a completed block. It has the player.Observer signature.
func (r *Recorder) Observe(res player.BlockResult) {
	if r.id == "" || r.ended {
		return
	}
	r.blocks++
	if r.events == nil {
		return
	}
	err := r.events.AppendBlockEvent(context.Background(), store.BlockEventData{
		SessionID: r.id,
		Index:     res.Index,
		BlockID:   res.Block.ID,
		BlockType: string(res.Block.Type),
		Score:     res.Score,
		Expired:   res.Expired,
		Skipped:   res.Skipped,
	})
	if err != nil {
		r.log.Warn("failed to record block", "session", r.id, "index", res.Index, "error", err)
	}
}

// Finish records the end of a session that played every block.
func (r *Recorder) Finish(ctx context.Context, total int) {
	r.end(ctx, store.SessionFinish, total)
}

// Quit records a session the student left early.
func (r *Recorder) Quit(ctx context.Context, total int) {
	r.end(ctx, store.SessionQuit, total)
}

func (r *Recorder) end(ctx context.Context, action string, total int) {
	if r.id == "" || r.ended {
		return
	}
	r.ended = true
	r.append(ctx, store.SessionEventData{
		SessionID:    r.id,
		Action:       action,
		LessonName:   r.lesson,
		Total:        total,
		BlocksPlayed: r.blocks,
		DurationSecs: int(r.now().Sub(r.started).Seconds()),
	})
}

func (r *Recorder) append(ctx context.Context, data store.SessionEventData) {
	if r.events == nil {
		return
	}
	if err := r.events.AppendSessionEvent(ctx, data); err != nil {
		r.log.Warn("failed to record session event", "session", data.SessionID, "action", data.Action, "error", err)
	}
}
