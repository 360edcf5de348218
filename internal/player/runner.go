// Package player sequences a lesson through its blocks. Exactly one block is
// live at a time; its handler is created on activation and discarded when
// the block completes. The Runner is not safe for concurrent use: the TUI
// update loop is its only caller.
package player

import (
	"github.com/alexchase32/lessbuilder/internal/exercise"
	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/logging"
)

// State is the session state of a Runner.
type State int

const (
	// StateNoLesson means there was nothing to play.
	StateNoLesson State = iota
	// StatePlaying means a block is live.
	StatePlaying
	// StateFinished means every block has completed; the total is final.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	default:
		return "no-lesson"
	}
}

// BlockResult describes one completed block.
type BlockResult struct {
	Index int
	Block lesson.Block
	Score int
	// Total is the session total after this block.
	Total int
	// Expired is set when the block timer forced completion.
	Expired bool
	// Skipped is set when the block could not be played or was abandoned.
	Skipped bool
	Err     error
}

// Observer is notified after every block completion.
type Observer func(BlockResult)

// Outcome is the effect of an event on the session.
type Outcome struct {
	exercise.Result
	// Completed lists the blocks finished by this event, including any
	// zero-item or unplayable blocks passed through on the way.
	Completed []BlockResult
	// Finished is true when the event ended the lesson.
	Finished bool
}

// BlockDone reports whether the event completed at least one block.
func (o Outcome) BlockDone() bool {
	return len(o.Completed) > 0
}

// Runner drives a single lesson session.
type Runner struct {
	registry  *exercise.Registry
	log       *logging.Logger
	observers []Observer

	lesson  *lesson.Lesson
	state   State
	index   int
	total   int
	handler exercise.Handler
	block   lesson.Block
	gen     uint64
	timer   countdown
	results []BlockResult

	// pending collects results produced outside Dispatch, such as blocks
	// skipped during Start.
	pending []BlockResult
}

// Option configures a Runner.
type Option func(*Runner)

// WithRegistry sets the handler factory.
func WithRegistry(r *exercise.Registry) Option {
	return func(rn *Runner) { rn.registry = r }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(rn *Runner) { rn.log = l }
}

// WithObserver adds a block completion callback.
func WithObserver(o Observer) Option {
	return func(rn *Runner) { rn.observers = append(rn.observers, o) }
}

func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, o := range opts {
		o(r)
	}
	if r.registry == nil {
		r.registry = exercise.NewRegistry(exercise.Options{})
	}
	if r.log == nil {
		r.log = logging.Nop()
	}
	return r
}

// Start begins a session. A nil lesson or one without blocks leaves the
// Runner in StateNoLesson.
func (r *Runner) Start(l *lesson.Lesson) {
	r.lesson = l
	r.index = 0
	r.total = 0
	r.handler = nil
	r.block = lesson.Block{}
	r.results = nil
	r.pending = nil
	r.timer = countdown{}

	if l == nil || len(l.Blocks) == 0 {
		r.state = StateNoLesson
		r.log.Info("no lesson available")
		return
	}
	r.state = StatePlaying
	r.log.Info("session started", "lesson", l.Name, "blocks", len(l.Blocks))
	r.pending = r.activate()
}

// TakeStarted returns the blocks completed while starting the session, such
// as leading zero-item blocks, and clears them.
func (r *Runner) TakeStarted() []BlockResult {
	out := r.pending
	r.pending = nil
	return out
}

// activate makes r.index live, passing over blocks that complete at once.
// It returns the blocks passed over.
func (r *Runner) activate() []BlockResult {
	var done []BlockResult
	for r.index < len(r.lesson.Blocks) {
		raw := r.lesson.Blocks[r.index]
		h, b, err := r.open(raw)
		r.gen++
		if err != nil {
			r.log.Warn("skipping block", "index", r.index, "type", raw.Type, "error", err)
			r.handler = nil
			r.block = raw
			done = append(done, r.complete(0, false, true, err))
			continue
		}

		r.handler = h
		r.block = b
		r.timer = countdown{}
		if t, ok := h.(timed); ok {
			r.timer = countdown{gen: r.gen, remaining: t.TimeLimit(), active: true}
		}
		r.log.Debug("block activated", "index", r.index, "type", b.Type, "generation", r.gen)

		if !h.Complete() {
			return done
		}
		done = append(done, r.complete(h.Score(), false, false, nil))
	}

	r.handler = nil
	r.timer = countdown{}
	r.state = StateFinished
	r.log.Info("session finished", "total", r.total, "blocks", len(r.lesson.Blocks))
	return done
}

func (r *Runner) open(raw lesson.Block) (exercise.Handler, lesson.Block, error) {
	b, err := lesson.Migrate(raw)
	if err != nil {
		return nil, raw, err
	}
	h, err := r.registry.New(b.Type)
	if err != nil {
		return nil, b, err
	}
	if err := h.Start(b); err != nil {
		return nil, b, err
	}
	return h, b, nil
}

// complete adds score once, notifies observers and moves to the next index.
func (r *Runner) complete(score int, expired, skipped bool, err error) BlockResult {
	r.total += score
	res := BlockResult{
		Index:   r.index,
		Block:   r.block,
		Score:   score,
		Total:   r.total,
		Expired: expired,
		Skipped: skipped,
		Err:     err,
	}
	r.results = append(r.results, res)
	r.log.Info("block completed", "index", r.index, "type", r.block.Type, "score", score, "total", r.total, "expired", expired, "skipped", skipped)
	for _, o := range r.observers {
		o(res)
	}
	r.index++
	return res
}

// advance finishes the live block and activates the next one.
func (r *Runner) advance(expired, skipped bool) []BlockResult {
	score := 0
	if !skipped {
		score = r.handler.Score()
	}
	first := r.complete(score, expired, skipped, nil)
	r.handler = nil
	r.timer = countdown{}
	return append([]BlockResult{first}, r.activate()...)
}

// Dispatch delivers an event to the live handler.
func (r *Runner) Dispatch(ev exercise.Event) Outcome {
	if r.state != StatePlaying || r.handler == nil {
		return Outcome{Result: exercise.Result{Ignored: true}}
	}
	res := r.handler.HandleEvent(ev)
	out := Outcome{Result: res}
	if r.handler.Complete() {
		_, isTimer := ev.(exercise.TimerExpired)
		expired := isTimer
		if e, ok := r.handler.(interface{ Expired() bool }); ok {
			expired = e.Expired()
		}
		out.Completed = r.advance(expired, false)
		out.Finished = r.state == StateFinished
	}
	return out
}

// Abandon completes the live block with score 0. It is the way out of a
// block that cannot be finished, such as speech practice without a
// recognizer.
func (r *Runner) Abandon() Outcome {
	if r.state != StatePlaying || r.handler == nil {
		return Outcome{Result: exercise.Result{Ignored: true}}
	}
	r.log.Warn("block abandoned", "index", r.index, "type", r.block.Type)
	out := Outcome{Result: exercise.Result{Done: true}}
	out.Completed = r.advance(false, true)
	out.Finished = r.state == StateFinished
	return out
}

// Generation identifies the live block activation. Timer and speech
// messages carry it so that messages for a completed block are dropped.
func (r *Runner) Generation() uint64 {
	return r.gen
}

// Live reports whether gen is the live activation.
func (r *Runner) Live(gen uint64) bool {
	return r.state == StatePlaying && r.handler != nil && gen == r.gen
}

// TimerExpired expires the block timer of activation gen. It is ignored
// when gen is stale or the block already completed.
func (r *Runner) TimerExpired(gen uint64) Outcome {
	if !r.Live(gen) || r.handler.Complete() {
		r.log.Debug("stale timer dropped", "generation", gen, "live", r.gen)
		return Outcome{Result: exercise.Result{Ignored: true}}
	}
	return r.Dispatch(exercise.TimerExpired{})
}

// State returns the session state.
func (r *Runner) State() State { return r.state }

// Index returns the index of the live block.
func (r *Runner) Index() int { return r.index }

// Total returns the session score.
func (r *Runner) Total() int { return r.total }

// Lesson returns the lesson being played.
func (r *Runner) Lesson() *lesson.Lesson { return r.lesson }

// Current returns the live handler, or nil.
func (r *Runner) Current() exercise.Handler { return r.handler }

// Block returns the live block after migration.
func (r *Runner) Block() lesson.Block { return r.block }

// Results returns the completed blocks in order.
func (r *Runner) Results() []BlockResult { return r.results }

// BlockCount returns the number of blocks in the lesson.
func (r *Runner) BlockCount() int {
	if r.lesson == nil {
		return 0
	}
	return len(r.lesson.Blocks)
}
