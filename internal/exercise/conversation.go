package exercise

import (
	"fmt"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// Conversation shows a transcript between the characters followed by
// multiple-choice comprehension questions.
type Conversation struct {
	cfg    *lesson.ConversationConfig
	cur    cursor
	ppi    int
	chosen int
}

func newConversation() *Conversation {
	return &Conversation{chosen: -1}
}

func (h *Conversation) Type() lesson.BlockType { return lesson.TypeConversation }

func (h *Conversation) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.ConversationConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Questions))
	h.chosen = -1
	h.cur.reset(len(cfg.Questions))
	return nil
}

func (h *Conversation) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}
	if res, ok := h.cur.advance(ev); ok {
		if !res.Ignored {
			h.chosen = -1
		}
		return res
	}

	q := h.cfg.Questions[h.cur.index]
	e, ok := ev.(Choose)
	if !ok || e.Index < 0 || e.Index >= len(q.Options) || !h.cur.accepting() {
		return ignored()
	}
	h.chosen = e.Index
	correct := e.Index == int(q.Correct)
	feedback := "¡Correcto!"
	if !correct && int(q.Correct) >= 0 && int(q.Correct) < len(q.Options) {
		feedback = fmt.Sprintf("The answer was: %s", q.Options[q.Correct])
	}
	return h.cur.evaluate(scoring.Binary(correct, h.ppi), correct, feedback)
}

// Transcript returns the conversation as "Speaker: text" lines.
func (h *Conversation) Transcript() []string {
	out := make([]string, 0, len(h.cfg.Dialogue))
	for i, l := range h.cfg.Dialogue {
		speaker := l.Speaker
		if speaker == "" && len(h.cfg.Characters) > 0 {
			speaker = h.cfg.Characters[i%len(h.cfg.Characters)].Name
		}
		out = append(out, fmt.Sprintf("%s: %s", speaker, l.Text))
	}
	return out
}

func (h *Conversation) Complete() bool { return h.cur.done() }

func (h *Conversation) Score() int { return h.cur.score }

func (h *Conversation) View() View {
	title := h.cfg.Title
	if title == "" {
		title = lesson.TypeConversation.Label()
	}
	v := View{
		Type:         lesson.TypeConversation,
		Title:        title,
		Instructions: h.cfg.Instructions,
		Mode:         SelectOne,
		Details:      h.Transcript(),
	}
	if !h.cur.done() && h.cur.index < len(h.cfg.Questions) {
		q := h.cfg.Questions[h.cur.index]
		v.Prompt = q.Text
		for i, o := range q.Options {
			opt := Option{Label: o, Selected: i == h.chosen}
			if h.cur.phase == PhaseEvaluated {
				opt.Disabled = true
				switch {
				case i == int(q.Correct):
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
