// Package exercise implements one handler per block type. A handler owns the
// item cursor, attempt tracker and block-local score of the live block and
// is discarded when the block completes.
package exercise

import (
	"fmt"
	"math/rand/v2"

	"github.com/alexchase32/lessbuilder/internal/lesson"
)

// Handler is the capability every block type implements.
type Handler interface {
	// Type returns the block type this handler plays.
	Type() lesson.BlockType

	// Start decodes the (migrated) block and presents the first item.
	Start(b lesson.Block) error

	// HandleEvent applies a user or timer event. Events that do not apply
	// in the current phase are ignored.
	HandleEvent(ev Event) Result

	// Complete reports whether the block is exhausted.
	Complete() bool

	// Score returns the block score. It is final once Complete is true.
	Score() int

	// View returns a snapshot of what to render.
	View() View
}

// Phase is the state of the item cursor.
type Phase int

const (
	// PhasePresenting shows item i; no input has been accepted yet.
	PhasePresenting Phase = iota
	// PhaseAwaiting accepts an answer for item i.
	PhaseAwaiting
	// PhaseEvaluated shows feedback for item i until Continue.
	PhaseEvaluated
	// PhaseExhausted means every item has been attempted.
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhasePresenting:
		return "presenting"
	case PhaseAwaiting:
		return "awaiting"
	case PhaseEvaluated:
		return "evaluated"
	case PhaseExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Result describes the effect of one event.
type Result struct {
	// Ignored is true when the event did not apply.
	Ignored bool
	// Correct is set when the event evaluated an answer.
	Correct *bool
	// Feedback is a message about the last evaluation.
	Feedback string
	// Warning is set when the cursor rewound to an unattempted item.
	Warning string
	// Done is true when this event completed the block.
	Done bool
	// Speech asks the caller to run a speech capability and report back
	// with SpeechResult or SpeechDone.
	Speech *SpeechRequest
}

func ignored() Result {
	return Result{Ignored: true}
}

func boolPtr(b bool) *bool {
	return &b
}

// UnattemptedWarning is shown when the student reaches the end of a block
// with items left to attempt.
const UnattemptedWarning = "You need to attempt all items before moving on."

// Options configure handler construction.
type Options struct {
	// Rand shuffles quiz options. Defaults to an unseeded source.
	Rand *rand.Rand
	// Language is the speech language tag.
	Language string
	// TypedSpeech lets the student type a phrase instead of speaking it.
	TypedSpeech bool
}

func (o Options) withDefaults() Options {
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Language == "" {
		o.Language = "es-ES"
	}
	return o
}

// constructors is the dispatch table from block type to handler.
var constructors = map[lesson.BlockType]func(Options) Handler{
	lesson.TypeFlashcard:         func(o Options) Handler { return newFlashcard() },
	lesson.TypeTranslation:       func(o Options) Handler { return newTranslation() },
	lesson.TypeHotspot:           func(o Options) Handler { return newHotspot(o.Rand) },
	lesson.TypeHighlightWords:    func(o Options) Handler { return newHighlight() },
	lesson.TypeImageClick:        func(o Options) Handler { return newImageClick() },
	lesson.TypeDialogue:          func(o Options) Handler { return newDialogue(o) },
	lesson.TypeAccent:            func(o Options) Handler { return newAccent() },
	lesson.TypePickPicture:       func(o Options) Handler { return newPickPicture() },
	lesson.TypeSentenceMatching:  func(o Options) Handler { return newMatching() },
	lesson.TypeSpeakingListening: func(o Options) Handler { return newSpeaking(o) },
	lesson.TypeSpellingQuiz:      func(o Options) Handler { return newSpelling() },
	lesson.TypeConversation:      func(o Options) Handler { return newConversation() },
}

// Registry creates handlers for block types.
type Registry struct {
	opts Options
}

// NewRegistry creates a registry whose handlers share opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{opts: opts.withDefaults()}
}

// New returns a fresh handler for t.
func (r *Registry) New(t lesson.BlockType) (Handler, error) {
	ctor, ok := constructors[t]
	if !ok {
		return nil, fmt.Errorf("%w %q", lesson.ErrUnknownBlockType, t)
	}
	return ctor(r.opts), nil
}

// TypedSpeech reports whether typed answers replace speech.
func (r *Registry) TypedSpeech() bool {
	return r.opts.TypedSpeech
}
