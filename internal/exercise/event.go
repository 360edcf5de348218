package exercise

// Event is an input delivered to the live handler.
type Event interface {
	event()
}

// Submit answers the current item with typed text.
type Submit struct{ Text string }

// Choose picks option Index of the current item.
type Choose struct{ Index int }

// Toggle flips the selection of option Index.
type Toggle struct{ Index int }

// SubmitSelection grades the current set of toggled options.
type SubmitSelection struct{}

// Reveal flips a flashcard or uncovers a hotspot label.
type Reveal struct{}

// Continue moves past an evaluated item.
type Continue struct{}

// Skip leaves the current item unattempted and moves on. The item is
// presented again before the block can finish.
type Skip struct{}

// SelectBlue picks a prompt card in a matching exercise.
type SelectBlue struct{ Index int }

// SelectWhite picks a completion card in a matching exercise.
type SelectWhite struct{ Index int }

// Speak starts the speech capability for a part of the current item.
type Speak struct{ Part int }

// SpeechResult delivers the terminal result of a recognition request. A
// recognition error is reported through Err and treated as an empty
// transcript.
type SpeechResult struct {
	Part       int
	Transcript string
	Err        error
}

// SpeechDone signals that synthesized speech finished playing.
type SpeechDone struct {
	Part int
	Err  error
}

// TimerExpired is delivered when the block countdown reaches zero.
type TimerExpired struct{}

func (Submit) event()          {}
func (Choose) event()          {}
func (Toggle) event()          {}
func (SubmitSelection) event() {}
func (Reveal) event()          {}
func (Continue) event()        {}
func (Skip) event()            {}
func (SelectBlue) event()      {}
func (SelectWhite) event()     {}
func (Speak) event()           {}
func (SpeechResult) event()    {}
func (SpeechDone) event()      {}
func (TimerExpired) event()    {}

// SpeechKind is the capability a SpeechRequest needs.
type SpeechKind int

const (
	Recognize SpeechKind = iota
	Synthesize
)

// SpeechRequest asks the caller to run a speech capability. Text is the
// phrase to synthesize, or the expected phrase for recognition.
type SpeechRequest struct {
	Kind     SpeechKind
	Part     int
	Text     string
	Language string
}
