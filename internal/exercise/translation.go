package exercise

import (
	"fmt"
	"strings"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// Translation asks for a typed translation of each sentence.
type Translation struct {
	cfg *lesson.TranslationConfig
	cur cursor
	ppi int
}

func newTranslation() *Translation {
	return &Translation{}
}

func (h *Translation) Type() lesson.BlockType { return lesson.TypeTranslation }

func (h *Translation) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.TranslationConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Sentences))
	h.cur.reset(len(cfg.Sentences))
	return nil
}

func (h *Translation) HandleEvent(ev Event) Result {
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
	s := h.cfg.Sentences[h.cur.index]
	correct := scoring.Equal(e.Text, s.CorrectAnswer)
	feedback := "¡Correcto!"
	if !correct {
		feedback = fmt.Sprintf("Correct translation: %s", s.CorrectAnswer)
	}
	return h.cur.evaluate(scoring.Binary(correct, h.ppi), correct, feedback)
}

func (h *Translation) Complete() bool { return h.cur.done() }

func (h *Translation) Score() int { return h.cur.score }

func (h *Translation) View() View {
	v := View{
		Type:         lesson.TypeTranslation,
		Title:        lesson.TypeTranslation.Label(),
		Instructions: h.cfg.Instructions,
		Placeholder:  "Enter your translation",
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Sentences) {
		s := h.cfg.Sentences[h.cur.index]
		v.Prompt = s.Sentence
		if len(s.Vocabulary) > 0 {
			v.Details = []string{"Vocabulary: " + strings.Join(s.Vocabulary, ", ")}
		}
		v.Input = h.cur.phase != PhaseEvaluated
	}
	return h.cur.baseView(v)
}
