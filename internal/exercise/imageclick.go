package exercise

import (
	"fmt"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// ImageClick asks which image belongs in a box for each question.
type ImageClick struct {
	cfg    *lesson.ImageClickConfig
	cur    cursor
	ppi    int
	chosen int
}

func newImageClick() *ImageClick {
	return &ImageClick{chosen: -1}
}

func (h *ImageClick) Type() lesson.BlockType { return lesson.TypeImageClick }

func (h *ImageClick) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.ImageClickConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Questions))
	h.cur.reset(len(cfg.Questions))
	h.present()
	return nil
}

// present clears the choice. Without images there is nothing to click, so
// the question is evaluated at zero.
func (h *ImageClick) present() {
	h.chosen = -1
	if h.cur.done() || len(h.cfg.Images) > 0 {
		return
	}
	h.cur.accepting()
	h.cur.evaluate(0, false, "No images to choose from.")
}

func (h *ImageClick) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}
	if res, ok := h.cur.advance(ev); ok {
		if !res.Ignored {
			h.present()
		}
		return res
	}

	e, ok := ev.(Choose)
	if !ok || e.Index < 0 || e.Index >= len(h.cfg.Images) || !h.cur.accepting() {
		return ignored()
	}
	q := h.cfg.Questions[h.cur.index]
	h.chosen = e.Index
	correct := h.cfg.Images[e.Index] == q.CorrectImage
	feedback := "¡Correcto!"
	if !correct {
		feedback = fmt.Sprintf("That belongs elsewhere. The right image is %s.", q.CorrectImage)
	}
	return h.cur.evaluate(scoring.Binary(correct, h.ppi), correct, feedback)
}

func (h *ImageClick) Complete() bool { return h.cur.done() }

func (h *ImageClick) Score() int { return h.cur.score }

func (h *ImageClick) View() View {
	v := View{
		Type:         lesson.TypeImageClick,
		Title:        lesson.TypeImageClick.Label(),
		Instructions: h.cfg.Instructions,
		Mode:         SelectOne,
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Questions) {
		q := h.cfg.Questions[h.cur.index]
		v.Prompt = q.Question
		v.Details = []string{fmt.Sprintf("Place it in box %d", int(q.BoxIndex)+1)}
		for i, img := range h.cfg.Images {
			opt := Option{Label: img, Selected: i == h.chosen}
			if h.cur.phase == PhaseEvaluated {
				opt.Disabled = true
				switch {
				case img == q.CorrectImage:
					opt.Mark = MarkCorrect
				case i == h.chosen:
					opt.Mark = MarkWrong
				}
			}
			v.Options = append(v.Options, opt)
		}
	}
	return h.cur.baseView(v)
}
