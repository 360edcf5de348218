package exercise

import "github.com/alexchase32/lessbuilder/internal/lesson"

// Mark is the evaluation state of an option.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkWrong
	MarkMatched
)

// Option is a choice, selectable word, image or card.
type Option struct {
	Label    string
	Selected bool
	Mark     Mark
	Disabled bool
}

// Action is a speech step the student can trigger.
type Action struct {
	Part    int
	Label   string
	Kind    SpeechKind
	Enabled bool
	Busy    bool
	Done    bool
	Mark    Mark
}

// Selection modes tell the renderer how options respond to input.
type SelectMode int

const (
	SelectNone SelectMode = iota
	// SelectOne picks a single option with Choose.
	SelectOne
	// SelectMany toggles options and grades with SubmitSelection.
	SelectMany
	// SelectPairs picks from two columns with SelectBlue/SelectWhite.
	SelectPairs
)

// View is a read-only snapshot of the live block.
type View struct {
	Type         lesson.BlockType
	Title        string
	Instructions string

	Index     int
	Total     int
	Attempted int
	Phase     Phase
	Score     int

	Prompt  string
	Details []string

	Mode    SelectMode
	Options []Option
	// Pairs holds the white column of a matching exercise; Options holds
	// the blue column.
	Pairs []Option

	// Input is true when the current item accepts typed text.
	Input       bool
	Placeholder string

	// Revealable is true when Reveal applies.
	Revealable bool
	Revealed   bool

	Actions []Action

	Feedback string
	Correct  *bool
	Warning  string
}
