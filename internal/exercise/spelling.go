package exercise

import (
	"fmt"
	"strings"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// Spelling shows a word with blanks and asks for the missing letters.
type Spelling struct {
	cfg *lesson.SpellingConfig
	cur cursor
	ppi int
}

func newSpelling() *Spelling {
	return &Spelling{}
}

func (h *Spelling) Type() lesson.BlockType { return lesson.TypeSpellingQuiz }

func (h *Spelling) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.SpellingConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Exercises))
	h.cur.reset(len(cfg.Exercises))
	return nil
}

// lettersOnly drops the separators a student may type between letters.
func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', ',', '-', '/':
			return -1
		}
		return r
	}, s)
}

// spelled reports whether text is the full word or the missing letters.
func spelled(text string, ex lesson.SpellingExercise) bool {
	if ex.Word != "" && scoring.Equal(text, ex.Word) {
		return true
	}
	if len(ex.Answer) == 0 {
		return false
	}
	return scoring.Equal(lettersOnly(text), lettersOnly(strings.Join(ex.Answer, "")))
}

func (h *Spelling) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}
	if res, ok := h.cur.advance(ev); ok {
		return res
	}

	e, ok := ev.(Submit)
	if !ok || !h.cur.accepting() {
		return ignored()
	}
	ex := h.cfg.Exercises[h.cur.index]
	correct := spelled(e.Text, ex)
	feedback := "¡Correcto!"
	if !correct {
		feedback = fmt.Sprintf("The word is %s.", ex.Word)
	}
	return h.cur.evaluate(scoring.Binary(correct, h.ppi), correct, feedback)
}

func (h *Spelling) Complete() bool { return h.cur.done() }

func (h *Spelling) Score() int { return h.cur.score }

func (h *Spelling) View() View {
	title := h.cfg.Title
	if title == "" {
		title = lesson.TypeSpellingQuiz.Label()
	}
	v := View{
		Type:         lesson.TypeSpellingQuiz,
		Title:        title,
		Instructions: h.cfg.Instructions,
		Placeholder:  "Missing letters or the whole word",
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Exercises) {
		ex := h.cfg.Exercises[h.cur.index]
		v.Prompt = ex.Hint
		if v.Prompt == "" {
			v.Prompt = strings.Repeat("_", len([]rune(ex.Word)))
		}
		if len(ex.Options) > 0 {
			v.Details = []string{"Letters: " + strings.Join(ex.Options, " ")}
		}
		v.Input = h.cur.phase != PhaseEvaluated
	}
	return h.cur.baseView(v)
}
