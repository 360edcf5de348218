package exercise

import (
	"fmt"
	"sort"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// PickPicture asks for every image that shows a verb. Partial selections
// earn partial credit, wrong picks cost a quarter each.
type PickPicture struct {
	cfg      *lesson.PickPictureConfig
	cur      cursor
	ppi      int
	selected map[int]bool
}

func newPickPicture() *PickPicture {
	return &PickPicture{selected: map[int]bool{}}
}

func (h *PickPicture) Type() lesson.BlockType { return lesson.TypePickPicture }

func (h *PickPicture) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.PickPictureConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Exercises))
	h.selected = map[int]bool{}
	h.cur.reset(len(cfg.Exercises))
	return nil
}

func (h *PickPicture) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}
	if res, ok := h.cur.advance(ev); ok {
		if !res.Ignored {
			h.selected = map[int]bool{}
		}
		return res
	}

	ex := h.cfg.Exercises[h.cur.index]
	switch e := ev.(type) {
	case Toggle:
		if e.Index < 0 || e.Index >= len(ex.Images) || !h.cur.accepting() {
			return ignored()
		}
		h.selected[e.Index] = !h.selected[e.Index]
		return Result{}

	case SubmitSelection:
		if !h.cur.accepting() {
			return ignored()
		}
		var picked []int
		for i, on := range h.selected {
			if on {
				picked = append(picked, i)
			}
		}
		sort.Ints(picked)
		correctIdx := lesson.Ints(ex.CorrectAnswers)
		points := scoring.PickPicture(picked, correctIdx, h.ppi)
		exact := points == h.ppi && h.ppi > 0

		var right int
		want := map[int]bool{}
		for _, c := range correctIdx {
			want[c] = true
		}
		for _, p := range picked {
			if want[p] {
				right++
			}
		}
		feedback := "¡Correcto! You selected all the right images."
		if !exact {
			feedback = fmt.Sprintf("Partial credit: %d of %d correct images, %d incorrect.", right, len(want), len(picked)-right)
		}
		return h.cur.evaluate(points, exact, feedback)
	}
	return ignored()
}

func (h *PickPicture) Complete() bool { return h.cur.done() }

func (h *PickPicture) Score() int { return h.cur.score }

func (h *PickPicture) View() View {
	title := h.cfg.Title
	if title == "" {
		title = lesson.TypePickPicture.Label()
	}
	v := View{
		Type:         lesson.TypePickPicture,
		Title:        title,
		Instructions: h.cfg.Instructions,
		Mode:         SelectMany,
	}
	if h.cur.done() || h.cur.index >= len(h.cfg.Exercises) {
		return h.cur.baseView(v)
	}

	ex := h.cfg.Exercises[h.cur.index]
	v.Prompt = ex.Verb
	want := map[int]bool{}
	for _, c := range ex.CorrectAnswers {
		want[int(c)] = true
	}
	for i, img := range ex.Images {
		opt := Option{Label: img, Selected: h.selected[i]}
		if h.cur.phase == PhaseEvaluated {
			opt.Disabled = true
			switch {
			case want[i]:
				opt.Mark = MarkCorrect
			case h.selected[i]:
				opt.Mark = MarkWrong
			}
		}
		v.Options = append(v.Options, opt)
	}
	return h.cur.baseView(v)
}
