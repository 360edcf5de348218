package player

import "github.com/alexchase32/lessbuilder/internal/exercise"

// timed is implemented by handlers with a block countdown.
type timed interface {
	TimeLimit() int
}

// countdown is the remaining time of one block activation.
type countdown struct {
	gen       uint64
	remaining int
	active    bool
}

// Remaining returns the seconds left on the live block timer and whether
// the block has one.
func (r *Runner) Remaining() (int, bool) {
	if !r.timer.active || !r.Live(r.timer.gen) {
		return 0, false
	}
	return r.timer.remaining, true
}

// Tick advances the countdown of activation gen by one second and expires
// the block when it reaches zero. Ticks for any other activation are
// ignored.
func (r *Runner) Tick(gen uint64) Outcome {
	if !r.timer.active || r.timer.gen != gen || !r.Live(gen) {
		return Outcome{Result: exercise.Result{Ignored: true}}
	}
	r.timer.remaining--
	if r.timer.remaining > 0 {
		return Outcome{}
	}
	r.timer.remaining = 0
	return r.TimerExpired(gen)
}
