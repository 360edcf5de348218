package exercise

import (
	"fmt"
	"strings"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// Highlight asks the student to select the words of a text that answer a
// question. Partial selections earn tiered credit.
type Highlight struct {
	cfg      *lesson.HighlightConfig
	cur      cursor
	ppi      int
	words    []string
	selected map[int]bool
}

func newHighlight() *Highlight {
	return &Highlight{}
}

func (h *Highlight) Type() lesson.BlockType { return lesson.TypeHighlightWords }

func (h *Highlight) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.HighlightConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Exercises))
	h.cur.reset(len(cfg.Exercises))
	h.present()
	return nil
}

func (h *Highlight) present() {
	h.selected = map[int]bool{}
	h.words = nil
	if h.cur.done() {
		return
	}
	h.words = strings.Fields(h.cfg.Exercises[h.cur.index].Text)
}

func (h *Highlight) keyWord(ex lesson.HighlightExercise) string {
	if ex.KeyWord != "" {
		return scoring.Word(ex.KeyWord)
	}
	return scoring.Word(h.cfg.KeyWord)
}

func (h *Highlight) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}

	switch e := ev.(type) {
	case Toggle:
		if e.Index < 0 || e.Index >= len(h.words) || !h.cur.accepting() {
			return ignored()
		}
		h.selected[e.Index] = !h.selected[e.Index]
		return Result{}

	case SubmitSelection:
		if !h.cur.accepting() {
			return ignored()
		}
		ex := h.cfg.Exercises[h.cur.index]
		var picked []string
		for i, w := range h.words {
			if h.selected[i] {
				picked = append(picked, scoring.Word(w))
			}
		}
		want := make([]string, len(ex.CorrectWords))
		for i, w := range ex.CorrectWords {
			want[i] = scoring.Word(w)
		}

		raw := scoring.HighlightRaw(picked, want, h.keyWord(ex))
		points := scoring.Scale(raw, h.ppi)
		var feedback string
		switch raw {
		case scoring.HighlightExact:
			feedback = "¡Perfecto! You selected all the correct words."
		case scoring.HighlightKeyWord:
			feedback = "Partial credit: you found the most important word, but there are others."
		default:
			feedback = fmt.Sprintf("Points earned: %d/100. Correct words: %s", raw, strings.Join(ex.CorrectWords, ", "))
		}
		return h.cur.evaluate(points, raw == scoring.HighlightExact, feedback)

	case Continue, Skip:
		res, _ := h.cur.advance(e)
		if !res.Ignored && !h.cur.done() {
			h.present()
		}
		return res
	}
	return ignored()
}

func (h *Highlight) Complete() bool { return h.cur.done() }

func (h *Highlight) Score() int { return h.cur.score }

func (h *Highlight) View() View {
	v := View{
		Type:         lesson.TypeHighlightWords,
		Title:        lesson.TypeHighlightWords.Label(),
		Instructions: h.cfg.Instructions,
		Mode:         SelectMany,
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Exercises) {
		ex := h.cfg.Exercises[h.cur.index]
		v.Prompt = ex.Question
		want := map[string]bool{}
		for _, w := range ex.CorrectWords {
			want[scoring.Word(w)] = true
		}
		for i, w := range h.words {
			opt := Option{Label: w, Selected: h.selected[i]}
			if h.cur.phase == PhaseEvaluated {
				opt.Disabled = true
				switch {
				case want[scoring.Word(w)]:
					opt.Mark = MarkCorrect
				case h.selected[i]:
					opt.Mark = MarkWrong
				}
			}
			v.Options = append(v.Options, opt)
		}
	}
	return h.cur.baseView(v)
}
