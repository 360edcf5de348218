package exercise

import (
	"fmt"
	"slices"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/scoring"
)

type matchPair struct {
	blue, white lesson.ID
}

// Matching plays sentence matching exercises. Each exercise is a bipartite
// task: pick a blue card, then a white card that completes it. The exercise
// counts as attempted only once every declared pair is matched.
type Matching struct {
	cfg   *lesson.MatchingConfig
	cur   cursor
	state []*matchState
	blue  int

	// current exercise, aliases into state
	tally   *scoring.MatchTally
	matched map[matchPair]bool
}

// matchState survives skipping away from an exercise, so progress and
// penalties are kept when it is presented again.
type matchState struct {
	tally   *scoring.MatchTally
	matched map[matchPair]bool
	wrong   int
}

func newMatching() *Matching {
	return &Matching{blue: -1}
}

func (h *Matching) Type() lesson.BlockType { return lesson.TypeSentenceMatching }

func (h *Matching) Start(b lesson.Block) error {
	cfg, err := lesson.DecodeConfig[lesson.MatchingConfig](b)
	if err != nil {
		return err
	}
	h.cfg = cfg
	h.state = make([]*matchState, len(cfg.Exercises))
	for i := range cfg.Exercises {
		cfg.Exercises[i] = cfg.Exercises[i].Normalize()
		ex := cfg.Exercises[i]
		h.state[i] = &matchState{
			tally:   scoring.NewMatchTally(ex.TotalMatches()),
			matched: map[matchPair]bool{},
		}
	}
	h.cur.reset(len(cfg.Exercises))
	h.present()
	return nil
}

func (h *Matching) present() {
	h.blue = -1
	h.tally = nil
	h.matched = nil
	if h.cur.done() {
		return
	}
	st := h.state[h.cur.index]
	h.tally = st.tally
	h.matched = st.matched
	if h.cfg.Exercises[h.cur.index].TotalMatches() == 0 {
		h.cur.accepting()
		h.cur.evaluate(0, true, "Nothing to match.")
	}
}

func (h *Matching) HandleEvent(ev Event) Result {
	if h.cur.done() {
		return ignored()
	}

	ex := h.cfg.Exercises[h.cur.index]
	switch e := ev.(type) {
	case SelectBlue:
		if e.Index < 0 || e.Index >= len(ex.BlueCards) || !h.cur.accepting() {
			return ignored()
		}
		if h.blueDone(ex, e.Index) {
			return ignored()
		}
		h.blue = e.Index
		return Result{}

	case SelectWhite:
		if h.blue < 0 || e.Index < 0 || e.Index >= len(ex.WhiteCards) || !h.cur.accepting() {
			return ignored()
		}
		p := matchPair{blue: ex.BlueCards[h.blue].ID, white: ex.WhiteCards[e.Index].ID}
		if h.matched[p] {
			return ignored()
		}
		h.blue = -1

		if !slices.Contains(ex.Matches[p.blue], p.white) {
			h.tally.Wrong()
			h.state[h.cur.index].wrong++
			h.cur.correct = boolPtr(false)
			h.cur.feedback = fmt.Sprintf("Not a match. -%d points.", scoring.WrongMatchPenalty)
			return Result{Correct: boolPtr(false), Feedback: h.cur.feedback}
		}

		h.matched[p] = true
		h.tally.Correct()
		if !h.tally.Done() {
			h.cur.correct = boolPtr(true)
			h.cur.feedback = "¡Correcto!"
			return Result{Correct: boolPtr(true), Feedback: h.cur.feedback}
		}
		feedback := fmt.Sprintf("All %d matches found.", h.tally.Matched())
		if n := h.state[h.cur.index].wrong; n > 0 {
			feedback += fmt.Sprintf(" %d wrong attempts.", n)
		}
		return h.cur.evaluate(h.tally.Round(), true, feedback)

	case Continue, Skip:
		res, _ := h.cur.advance(e)
		if !res.Ignored && !h.cur.done() {
			h.present()
		}
		return res
	}
	return ignored()
}

// blueDone reports whether every white card listed for blue card i is matched.
func (h *Matching) blueDone(ex lesson.MatchingExercise, i int) bool {
	id := ex.BlueCards[i].ID
	whites := ex.Matches[id]
	if len(whites) == 0 {
		return false
	}
	for _, w := range whites {
		if !h.matched[matchPair{blue: id, white: w}] {
			return false
		}
	}
	return true
}

func (h *Matching) whiteMatched(id lesson.ID) bool {
	for p := range h.matched {
		if p.white == id {
			return true
		}
	}
	return false
}

// Tally returns the running, unrounded score of the current exercise.
func (h *Matching) Tally() float64 {
	if h.tally == nil {
		return 0
	}
	return h.tally.Points()
}

func (h *Matching) Complete() bool { return h.cur.done() }

func (h *Matching) Score() int { return h.cur.score }

func (h *Matching) View() View {
	title := h.cfg.Title
	if title == "" {
		title = lesson.TypeSentenceMatching.Label()
	}
	v := View{
		Type:         lesson.TypeSentenceMatching,
		Title:        title,
		Instructions: h.cfg.Instructions,
		Mode:         SelectPairs,
	}
	if h.cur.done() || h.cur.index >= len(h.cfg.Exercises) {
		return h.cur.baseView(v)
	}

	ex := h.cfg.Exercises[h.cur.index]
	v.Prompt = fmt.Sprintf("%d of %d matches", h.tally.Matched(), ex.TotalMatches())
	evaluated := h.cur.phase == PhaseEvaluated
	for i, c := range ex.BlueCards {
		opt := Option{Label: c.Text, Selected: i == h.blue}
		if h.blueDone(ex, i) {
			opt.Mark = MarkMatched
			opt.Disabled = true
		}
		opt.Disabled = opt.Disabled || evaluated
		v.Options = append(v.Options, opt)
	}
	for _, c := range ex.WhiteCards {
		opt := Option{Label: c.Text, Disabled: evaluated}
		if h.whiteMatched(c.ID) {
			opt.Mark = MarkMatched
		}
		v.Pairs = append(v.Pairs, opt)
	}
	for p := range h.matched {
		v.Details = append(v.Details, fmt.Sprintf("%s ↔ %s", cardText(ex.BlueCards, p.blue), cardText(ex.WhiteCards, p.white)))
	}
	slices.Sort(v.Details)
	return h.cur.baseView(v)
}

func cardText(cards []lesson.MatchCard, id lesson.ID) string {
	for _, c := range cards {
		if c.ID == id {
			return c.Text
		}
	}
	return string(id)
}
