package exercise

import (
	"fmt"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// Flashcard plays a timed deck. Each correct card is one raw point. When the
// countdown expires the remaining cards count as attempted with no points.
type Flashcard struct {
	cfg     *lesson.FlashcardConfig
	cur     cursor
	flipped bool
	expired bool
}

func newFlashcard() *Flashcard {
	return &Flashcard{}
}

func (h *Flashcard) Type() lesson.BlockType { return lesson.TypeFlashcard }

func (h *Flashcard) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.FlashcardConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.flipped = false
	h.expired = false
	h.cur.reset(len(cfg.Cards))
	return nil
}

// TimeLimit returns the countdown in seconds.
func (h *Flashcard) TimeLimit() int {
	if h.cfg == nil || h.cfg.TimeLimit <= 0 {
		return lesson.DefaultTimeLimit
	}
	return int(h.cfg.TimeLimit)
}

// Expired reports whether the block ended on the timer.
func (h *Flashcard) Expired() bool {
	return h.expired
}

func (h *Flashcard) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}

	switch e := ev.(type) {
	case TimerExpired:
		h.expired = true
		h.cur.finish()
		return Result{Done: true, Warning: "Time's up!"}

	case Reveal:
		h.flipped = !h.flipped
		return Result{}

	case Submit:
		if !h.cur.accepting() {
			return ignored()
		}
		card := h.cfg.Cards[h.cur.index]
		correct := scoring.Equal(e.Text, card.Spanish)
		feedback := "¡Correcto!"
		if !correct {
			feedback = fmt.Sprintf("The answer was: %s", card.Spanish)
		}
		res := h.cur.evaluate(scoring.Flashcard(correct), correct, feedback)

		// Cards advance straight after an answer.
		h.flipped = false
		next := h.cur.next()
		h.cur.feedback = feedback
		h.cur.correct = res.Correct
		res.Done = next.Done
		res.Warning = next.Warning
		return res

	case Skip:
		if !h.cur.accepting() {
			return ignored()
		}
		h.flipped = false
		return h.cur.next()
	}
	return ignored()
}

func (h *Flashcard) Complete() bool { return h.cur.done() }

func (h *Flashcard) Score() int { return h.cur.score }

func (h *Flashcard) View() View {
	v := View{
		Type:         lesson.TypeFlashcard,
		Title:        lesson.TypeFlashcard.Label(),
		Instructions: h.cfg.Instructions,
		Revealable:   true,
		Revealed:     h.flipped,
		Input:        !h.cur.done(),
		Placeholder:  "Type the Spanish word...",
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Cards) {
		card := h.cfg.Cards[h.cur.index]
		v.Prompt = card.English
		if h.flipped {
			v.Details = []string{card.Spanish}
		}
	}
	return h.cur.baseView(v)
}
