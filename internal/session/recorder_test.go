package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/player"
	"github.com/alexchase32/lessbuilder/internal/store"
)

// mockEventRepo records appended events.
type mockEventRepo struct {
	store.EventRepo
	sessionEvents []store.SessionEventData
	blockEvents   []store.BlockEventData
	err           error
}

func (m *mockEventRepo) AppendSessionEvent(_ context.Context, data store.SessionEventData) error {
	m.sessionEvents = append(m.sessionEvents, data)
	return m.err
}

func (m *mockEventRepo) AppendBlockEvent(_ context.Context, data store.BlockEventData) error {
	m.blockEvents = append(m.blockEvents, data)
	return m.err
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func TestRecorderLifecycle(t *testing.T) {
	repo := &mockEventRepo{}
	r := NewRecorder(repo, nil)
	r.now = fixedClock(time.Unix(1000, 0), 90*time.Second)
	ctx := context.Background()

	r.Begin(ctx, &lesson.Lesson{Name: "Saludos"})
	if r.ID() == "" {
		t.Fatal("expected a session id after Begin")
	}
	r.Observe(player.BlockResult{Index: 0, Block: lesson.Block{ID: 7, Type: lesson.TypeAccent}, Score: 50, Total: 50})
	r.Observe(player.BlockResult{Index: 1, Block: lesson.Block{ID: 8, Type: "bogus"}, Skipped: true, Total: 50})
	r.Finish(ctx, 50)

	if len(repo.sessionEvents) != 2 {
		t.Fatalf("expected 2 session events, got %d", len(repo.sessionEvents))
	}
	start, end := repo.sessionEvents[0], repo.sessionEvents[1]
	if start.Action != store.SessionStart || start.LessonName != "Saludos" {
		t.Errorf("unexpected start event %+v", start)
	}
	if end.Action != store.SessionFinish || end.Total != 50 || end.BlocksPlayed != 2 {
		t.Errorf("unexpected finish event %+v", end)
	}
	if end.DurationSecs != 90 {
		t.Errorf("expected 90s duration, got %d", end.DurationSecs)
	}
	if start.SessionID != r.ID() || end.SessionID != r.ID() {
		t.Error("session events should share the recorder id")
	}

	if len(repo.blockEvents) != 2 {
		t.Fatalf("expected 2 block events, got %d", len(repo.blockEvents))
	}
	if b := repo.blockEvents[0]; b.BlockID != 7 || b.BlockType != "accent" || b.Score != 50 {
		t.Errorf("unexpected block event %+v", b)
	}
	if !repo.blockEvents[1].Skipped {
		t.Error("expected second block to be recorded as skipped")
	}
}

func TestRecorderEndsOnce(t *testing.T) {
	repo := &mockEventRepo{}
	r := NewRecorder(repo, nil)
	ctx := context.Background()

	r.Begin(ctx, nil)
	r.Quit(ctx, 10)
	r.Finish(ctx, 20)
	r.Observe(player.BlockResult{Index: 3})

	if len(repo.sessionEvents) != 2 {
		t.Fatalf("expected start and quit only, got %d events", len(repo.sessionEvents))
	}
	if repo.sessionEvents[1].Action != store.SessionQuit {
		t.Errorf("expected quit, got %q", repo.sessionEvents[1].Action)
	}
	if len(repo.blockEvents) != 0 {
		t.Error("blocks after the end should not be recorded")
	}
}

func TestRecorderWithoutBegin(t *testing.T) {
	repo := &mockEventRepo{}
	r := NewRecorder(repo, nil)

	r.Observe(player.BlockResult{})
	r.Finish(context.Background(), 0)

	if len(repo.sessionEvents)+len(repo.blockEvents) != 0 {
		t.Error("nothing should be recorded before Begin")
	}
}

func TestRecorderNilRepo(t *testing.T) {
	r := NewRecorder(nil, nil)
	ctx := context.Background()

	r.Begin(ctx, &lesson.Lesson{Name: "x"})
	r.Observe(player.BlockResult{})
	r.Finish(ctx, 0)
}

func TestRecorderIgnoresStoreErrors(t *testing.T) {
	repo := &mockEventRepo{err: errors.New("disk full")}
	r := NewRecorder(repo, nil)
	ctx := context.Background()

	r.Begin(ctx, nil)
	r.Observe(player.BlockResult{})
	r.Finish(ctx, 0)

	if len(repo.sessionEvents) != 2 || len(repo.blockEvents) != 1 {
		t.Error("expected every append to be attempted despite errors")
	}
}
