package exercise

import (
	"fmt"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// speechPart tracks one spoken line of an item.
type speechPart struct {
	busy       bool
	done       bool
	correct    bool
	transcript string
}

// Dialogue has the student say both lines of each exchange in Spanish. Both
// right earns the full share, one earns half.
type Dialogue struct {
	cfg   *lesson.DialogueConfig
	cur   cursor
	ppi   int
	opts  Options
	parts [2]speechPart
}

func newDialogue(opts Options) *Dialogue {
	return &Dialogue{opts: opts}
}

func (h *Dialogue) Type() lesson.BlockType { return lesson.TypeDialogue }

func (h *Dialogue) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.DialogueConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Dialogues))
	h.cur.reset(len(cfg.Dialogues))
	h.parts = [2]speechPart{}
	return nil
}

func (h *Dialogue) line(part int) lesson.Line {
	d := h.cfg.Dialogues[h.cur.index]
	if part == 0 {
		return d.SpeakerA
	}
	return d.SpeakerB
}

func (h *Dialogue) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}
	if res, ok := h.cur.advance(ev); ok {
		if !res.Ignored {
			h.parts = [2]speechPart{}
		}
		return res
	}

	switch e := ev.(type) {
	case Speak:
		if !validPart(e.Part) || h.parts[e.Part].done || h.parts[e.Part].busy || !h.cur.accepting() {
			return ignored()
		}
		h.parts[e.Part].busy = true
		return Result{Speech: &SpeechRequest{
			Kind:     Recognize,
			Part:     e.Part,
			Text:     h.line(e.Part).Spanish,
			Language: h.opts.Language,
		}}

	case SpeechResult:
		if !validPart(e.Part) || !h.parts[e.Part].busy {
			return ignored()
		}
		h.parts[e.Part].busy = false
		if e.Err != nil {
			h.cur.feedback = "Didn't catch that. Try again."
			return Result{Feedback: h.cur.feedback}
		}
		return h.answer(e.Part, e.Transcript)

	case Submit:
		if !h.opts.TypedSpeech || !h.cur.accepting() {
			return ignored()
		}
		part := h.pendingPart()
		if part < 0 || h.parts[part].busy {
			return ignored()
		}
		return h.answer(part, e.Text)
	}
	return ignored()
}

func (h *Dialogue) pendingPart() int {
	for i, p := range h.parts {
		if !p.done {
			return i
		}
	}
	return -1
}

func (h *Dialogue) answer(part int, transcript string) Result {
	p := &h.parts[part]
	p.done = true
	p.transcript = transcript
	p.correct = scoring.SpeechEqual(transcript, h.line(part).Spanish)

	if !h.parts[0].done || !h.parts[1].done {
		h.cur.correct = boolPtr(p.correct)
		h.cur.feedback = fmt.Sprintf("Heard: %q", transcript)
		return Result{Correct: boolPtr(p.correct), Feedback: h.cur.feedback}
	}

	a, b := h.parts[0].correct, h.parts[1].correct
	var feedback string
	switch {
	case a && b:
		feedback = "¡Perfecto! Both responses are correct."
	case a || b:
		feedback = "Partial credit. One response is correct."
	default:
		feedback = "Both responses need improvement."
	}
	d := h.cfg.Dialogues[h.cur.index]
	feedback += fmt.Sprintf(" A: %s / B: %s", d.SpeakerA.Spanish, d.SpeakerB.Spanish)
	return h.cur.evaluate(scoring.Pair(a, b, h.ppi), a && b, feedback)
}

func validPart(p int) bool {
	return p == 0 || p == 1
}

func (h *Dialogue) Complete() bool { return h.cur.done() }

func (h *Dialogue) Score() int { return h.cur.score }

func (h *Dialogue) View() View {
	v := View{
		Type:         lesson.TypeDialogue,
		Title:        lesson.TypeDialogue.Label(),
		Instructions: h.cfg.Instructions,
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Dialogues) {
		d := h.cfg.Dialogues[h.cur.index]
		v.Prompt = fmt.Sprintf("Speaker A: %s", d.SpeakerA.English)
		v.Details = []string{fmt.Sprintf("Speaker B: %s", d.SpeakerB.English)}
		for i, label := range []string{"Speaker A", "Speaker B"} {
			p := h.parts[i]
			a := Action{
				Part:    i,
				Label:   label,
				Kind:    Recognize,
				Enabled: !p.done && !p.busy && h.cur.phase != PhaseEvaluated,
				Busy:    p.busy,
				Done:    p.done,
			}
			if p.done {
				a.Mark = MarkWrong
				if p.correct {
					a.Mark = MarkCorrect
				}
				a.Label = fmt.Sprintf("%s: %q", label, p.transcript)
			}
			v.Actions = append(v.Actions, a)
		}
		v.Input = h.opts.TypedSpeech && h.cur.phase != PhaseEvaluated
		v.Placeholder = "Type what you would say..."
	}
	return h.cur.baseView(v)
}
