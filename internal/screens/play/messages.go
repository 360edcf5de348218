package play

import "github.com/alexchase32/lessbuilder/internal/exercise"

// tickMsg is one second of the block countdown of activation gen.
type tickMsg struct {
	gen uint64
}

// speechMsg carries the result of a recognition or synthesis call made for
// activation gen.
type speechMsg struct {
	gen   uint64
	event exercise.Event
}
