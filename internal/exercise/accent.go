package exercise

import (
	"strings"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// accentMap gives the accented form of each letter that can take a mark.
var accentMap = map[rune]rune{
	'a': 'á', 'e': 'é', 'i': 'í', 'o': 'ó', 'u': 'ú', 'n': 'ñ',
	'A': 'Á', 'E': 'É', 'I': 'Í', 'O': 'Ó', 'U': 'Ú', 'N': 'Ñ',
}

// Accented returns r with an accent mark, or r unchanged.
func Accented(r rune) rune {
	if a, ok := accentMap[r]; ok {
		return a
	}
	return r
}

// Accentable reports whether r is a letter that can take an accent mark.
func Accentable(r rune) bool {
	_, ok := accentMap[r]
	return ok
}

// Accent asks the student to mark the letters of a sentence that need an
// accent. Only the exact set of letters earns credit.
type Accent struct {
	cfg      *lesson.AccentConfig
	cur      cursor
	ppi      int
	letters  []rune
	selected map[int]bool
}

func newAccent() *Accent {
	return &Accent{}
}

func (h *Accent) Type() lesson.BlockType { return lesson.TypeAccent }

func (h *Accent) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.AccentConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Sentences))
	h.cur.reset(len(cfg.Sentences))
	h.present()
	return nil
}

func (h *Accent) present() {
	h.selected = map[int]bool{}
	h.letters = nil
	if h.cur.done() {
		return
	}
	h.letters = []rune(h.cfg.Sentences[h.cur.index].Text)
}

func (h *Accent) corrections() map[int]string {
	out := map[int]string{}
	for _, c := range h.cfg.Sentences[h.cur.index].Corrections {
		out[int(c.Index)] = c.Accent
	}
	return out
}

func (h *Accent) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}

	switch e := ev.(type) {
	case Toggle:
		if e.Index < 0 || e.Index >= len(h.letters) || !Accentable(h.letters[e.Index]) || !h.cur.accepting() {
			return ignored()
		}
		h.selected[e.Index] = !h.selected[e.Index]
		return Result{}

	case SubmitSelection:
		if !h.cur.accepting() {
			return ignored()
		}
		want := h.corrections()
		correct := true
		n := 0
		for i, on := range h.selected {
			if !on {
				continue
			}
			n++
			if _, ok := want[i]; !ok {
				correct = false
			}
		}
		if n != len(want) {
			correct = false
		}
		feedback := "¡Perfecto! You identified all the accent marks correctly."
		if !correct {
			feedback = "Some accents were missed or incorrectly identified: " + h.Corrected()
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

// Corrected returns the current sentence with every correction applied.
func (h *Accent) Corrected() string {
	if h.cur.done() {
		return ""
	}
	want := h.corrections()
	var b strings.Builder
	for i, r := range h.letters {
		if acc, ok := want[i]; ok {
			if acc != "" {
				b.WriteString(acc)
			} else {
				b.WriteRune(Accented(r))
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (h *Accent) Complete() bool { return h.cur.done() }

func (h *Accent) Score() int { return h.cur.score }

func (h *Accent) View() View {
	title := h.cfg.Title
	if title == "" {
		title = lesson.TypeAccent.Label()
	}
	v := View{
		Type:         lesson.TypeAccent,
		Title:        title,
		Instructions: h.cfg.Instructions,
		Mode:         SelectMany,
	}
	if h.cur.done() {
		return h.cur.baseView(v)
	}

	v.Prompt = string(h.letters)
	evaluated := h.cur.phase == PhaseEvaluated
	var want map[int]string
	if evaluated {
		want = h.corrections()
	}
	for i, r := range h.letters {
		opt := Option{Label: string(r), Selected: h.selected[i], Disabled: !Accentable(r) || evaluated}
		if evaluated {
			_, needs := want[i]
			switch {
			case needs && h.selected[i]:
				opt.Mark = MarkCorrect
				opt.Label = string(Accented(r))
				if acc := want[i]; acc != "" {
					opt.Label = acc
				}
			case needs || h.selected[i]:
				opt.Mark = MarkWrong
			}
		}
		v.Options = append(v.Options, opt)
	}
	return h.cur.baseView(v)
}
