package exercise

import (
	"fmt"
	"strings"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

// Steps of a speaking item. The written answer unlocks after stepWrite.
const (
	stepAsk = iota
	stepListen
	stepFollowup
	stepListenAgain
	stepWrite
)

var stepLabels = [...]string{
	stepAsk:         "Ask the question",
	stepListen:      "Listen to the answer",
	stepFollowup:    "Ask the follow-up",
	stepListenAgain: "Listen to the answer",
}

// Speaking guides the student through ask, listen, ask, listen, then a
// written answer that must contain every expected phrase.
type Speaking struct {
	cfg     *lesson.SpeakingConfig
	cur     cursor
	ppi     int
	opts    Options
	step    int
	busy    bool
	heard   [2]string
	awarded bool
	missing []string
}

func newSpeaking(opts Options) *Speaking {
	return &Speaking{opts: opts}
}

func (h *Speaking) Type() lesson.BlockType { return lesson.TypeSpeakingListening }

func (h *Speaking) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.SpeakingConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.ppi = scoring.PointsPerItem(len(cfg.Exercises))
	h.cur.reset(len(cfg.Exercises))
	h.present()
	return nil
}

func (h *Speaking) present() {
	h.step = stepAsk
	h.busy = false
	h.heard = [2]string{}
	h.awarded = false
	h.missing = nil
}

// phrase returns the text spoken or expected at step s.
func (h *Speaking) phrase(s int) string {
	ex := h.cfg.Exercises[h.cur.index]
	switch s {
	case stepAsk:
		return ex.AskQuestion
	case stepListen:
		return ex.FirstAnswer
	case stepFollowup:
		return ex.AskFollowup
	case stepListenAgain:
		return ex.SecondAnswer
	}
	return ""
}

func recognizes(step int) bool {
	return step == stepAsk || step == stepFollowup
}

// Step returns the current guided step; 4 means the written answer is open.
func (h *Speaking) Step() int { return h.step }

func (h *Speaking) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}

	switch e := ev.(type) {
	case Speak:
		if e.Part != h.step || h.step >= stepWrite || h.busy || !h.cur.accepting() {
			return ignored()
		}
		h.busy = true
		kind := Synthesize
		if recognizes(h.step) {
			kind = Recognize
		}
		return Result{Speech: &SpeechRequest{
			Kind:     kind,
			Part:     h.step,
			Text:     h.phrase(h.step),
			Language: h.opts.Language,
		}}

	case SpeechResult:
		if !h.busy || e.Part != h.step || !recognizes(h.step) {
			return ignored()
		}
		h.busy = false
		if e.Err != nil {
			h.cur.feedback = "Didn't catch that. Try again."
			return Result{Feedback: h.cur.feedback}
		}
		return h.asked(e.Transcript)

	case SpeechDone:
		if !h.busy || e.Part != h.step || recognizes(h.step) {
			return ignored()
		}
		h.busy = false
		h.cur.feedback = ""
		if e.Err != nil {
			h.cur.feedback = fmt.Sprintf("Audio unavailable. The answer was: %s", h.phrase(h.step))
		}
		h.step++
		return Result{Feedback: h.cur.feedback}

	case Submit:
		if recognizes(h.step) {
			if !h.opts.TypedSpeech || h.busy || !h.cur.accepting() {
				return ignored()
			}
			return h.asked(e.Text)
		}
		if h.step != stepWrite {
			return ignored()
		}
		return h.write(e.Text)

	case Continue, Skip:
		res, _ := h.cur.advance(e)
		if !res.Ignored && !h.cur.done() {
			h.present()
		}
		return res
	}
	return ignored()
}

// asked checks a spoken or typed question for the current ask step.
func (h *Speaking) asked(transcript string) Result {
	h.heard[h.step/2] = transcript
	if !scoring.Contains(transcript, h.phrase(h.step)) {
		h.cur.feedback = fmt.Sprintf("Heard %q. Try asking: %s", transcript, h.phrase(h.step))
		return Result{Correct: boolPtr(false), Feedback: h.cur.feedback}
	}
	h.cur.feedback = "¡Muy bien!"
	h.step++
	return Result{Correct: boolPtr(true), Feedback: h.cur.feedback}
}

// write grades the written answer. A wrong answer may be retried until
// Continue and the share is awarded at most once.
func (h *Speaking) write(text string) Result {
	if h.cur.phase != PhaseEvaluated && !h.cur.accepting() {
		return ignored()
	}
	if h.cur.phase == PhaseEvaluated && h.awarded {
		return ignored()
	}

	ok, missing := scoring.ContainsAll(text, h.cfg.Exercises[h.cur.index].ExpectedText)
	h.missing = missing
	feedback := "¡Excelente! You used all the expected phrases."
	if !ok {
		feedback = "Missing: " + strings.Join(missing, ", ")
	}

	points := 0
	if ok && !h.awarded {
		h.awarded = true
		points = scoring.Pair(true, true, h.ppi)
	}
	if h.cur.phase == PhaseEvaluated {
		h.cur.score += points
		h.cur.feedback = feedback
		h.cur.correct = boolPtr(ok)
		return Result{Correct: boolPtr(ok), Feedback: feedback}
	}
	return h.cur.evaluate(points, ok, feedback)
}

func (h *Speaking) Complete() bool { return h.cur.done() }

func (h *Speaking) Score() int { return h.cur.score }

func (h *Speaking) View() View {
	title := h.cfg.Title
	if title == "" {
		title = lesson.TypeSpeakingListening.Label()
	}
	v := View{
		Type:         lesson.TypeSpeakingListening,
		Title:        title,
		Instructions: h.cfg.Instructions,
	}
	if h.cur.done() || h.cur.index >= len(h.cfg.Exercises) {
		return h.cur.baseView(v)
	}

	ex := h.cfg.Exercises[h.cur.index]
	v.Prompt = ex.Title
	if ex.ImageAlt != "" {
		v.Details = append(v.Details, ex.ImageAlt)
	}
	for s := stepAsk; s < stepWrite; s++ {
		a := Action{
			Part:    s,
			Label:   stepLabels[s],
			Kind:    Synthesize,
			Enabled: s == h.step && !h.busy,
			Busy:    s == h.step && h.busy,
			Done:    s < h.step,
		}
		if recognizes(s) {
			a.Kind = Recognize
			a.Label = fmt.Sprintf("%s: %s", stepLabels[s], h.phrase(s))
			if heard := h.heard[s/2]; heard != "" && s < h.step {
				a.Mark = MarkCorrect
			}
		} else if s < h.step {
			a.Label = fmt.Sprintf("%s: %s", stepLabels[s], h.phrase(s))
		}
		v.Actions = append(v.Actions, a)
	}

	switch {
	case h.step == stepWrite:
		v.Input = !(h.cur.phase == PhaseEvaluated && h.awarded)
		v.Placeholder = "Write what you learned..."
	case recognizes(h.step) && h.opts.TypedSpeech:
		v.Input = !h.busy
		v.Placeholder = "Type the question..."
	}
	return h.cur.baseView(v)
}
