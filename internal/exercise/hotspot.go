package exercise

import (
	"fmt"
	"math/rand/v2"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// Hotspot plays a two-phase item: reveal the label, then answer a quiz whose
// options are shuffled each time the item is presented.
type Hotspot struct {
	cfg      *lesson.HotspotConfig
	cur      cursor
	ppi      int
	rng      *rand.Rand
	revealed bool
	options  []string
	chosen   int
}

func newHotspot(rng *rand.Rand) *Hotspot {
	return &Hotspot{rng: rng}
}

func (h *Hotspot) Type() lesson.BlockType { return lesson.TypeHotspot }

func (h *Hotspot) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.HotspotConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Hotspots))
	h.cur.reset(len(cfg.Hotspots))
	h.present()
	return nil
}

// present resets the per-item state for the cursor's current hotspot.
func (h *Hotspot) present() {
	h.revealed = false
	h.chosen = -1
	h.options = nil
	if h.cur.done() {
		return
	}
	h.options = append([]string(nil), h.cfg.Hotspots[h.cur.index].Options...)
	h.rng.Shuffle(len(h.options), func(i, j int) {
		h.options[i], h.options[j] = h.options[j], h.options[i]
	})
	if len(h.options) == 0 {
		h.revealed = true
		h.cur.accepting()
		h.cur.evaluate(0, false, fmt.Sprintf("No options to choose from. The answer is %s.", h.cfg.Hotspots[h.cur.index].Correct))
	}
}

func (h *Hotspot) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}

	switch e := ev.(type) {
	case Reveal:
		if h.cur.phase != PhasePresenting {
			return ignored()
		}
		h.revealed = true
		h.cur.phase = PhaseAwaiting
		return Result{}

	case Choose:
		if h.cur.phase != PhaseAwaiting || e.Index < 0 || e.Index >= len(h.options) {
			return ignored()
		}
		spot := h.cfg.Hotspots[h.cur.index]
		h.chosen = e.Index
		correct := h.options[e.Index] == spot.Correct
		feedback := "¡Correcto!"
		if !correct {
			feedback = fmt.Sprintf("Not quite. The answer is %s.", spot.Correct)
		}
		return h.cur.evaluate(scoring.Binary(correct, h.ppi), correct, feedback)

	case Continue, Skip:
		res, _ := h.cur.advance(e)
		if !res.Ignored && !h.cur.done() {
			h.present()
		}
		return res
	}
	return ignored()
}

func (h *Hotspot) Complete() bool { return h.cur.done() }

func (h *Hotspot) Score() int { return h.cur.score }

func (h *Hotspot) View() View {
	title := h.cfg.Title
	if title == "" {
		title = lesson.TypeHotspot.Label()
	}
	v := View{
		Type:         lesson.TypeHotspot,
		Title:        title,
		Instructions: h.cfg.Instructions,
		Revealable:   h.cur.phase == PhasePresenting,
		Revealed:     h.revealed,
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Hotspots) {
		spot := h.cfg.Hotspots[h.cur.index]
		v.Prompt = fmt.Sprintf("Hotspot %s at (%s, %s)", spot.ID, spot.Left, spot.Top)
		if h.revealed {
			v.Prompt = spot.Label
			if spot.English != "" {
				v.Details = []string{spot.English}
			}
			v.Mode = SelectOne
			for i, o := range h.options {
				opt := Option{Label: o, Disabled: h.cur.phase == PhaseEvaluated}
				if h.cur.phase == PhaseEvaluated {
					switch {
					case o == spot.Correct:
						opt.Mark = MarkCorrect
					case i == h.chosen:
						opt.Mark = MarkWrong
					}
					opt.Selected = i == h.chosen
				}
				v.Options = append(v.Options, opt)
			}
		}
	}
	return h.cur.baseView(v)
}
