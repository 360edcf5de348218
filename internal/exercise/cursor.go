package exercise

import "github.com/alexchase32/lessbuilder/internal/attempt"

// cursor is the item loop shared by the handlers:
// presenting(i) -> awaiting -> evaluated(i) -> presenting(next) | exhausted.
type cursor struct {
	n       int
	index   int
	phase   Phase
	tracker *attempt.Tracker
	score   int

	feedback string
	correct  *bool
	warning  string
}

func (c *cursor) reset(n int) {
	c.n = n
	c.index = 0
	c.score = 0
	c.tracker = attempt.New(n)
	c.clear()
	c.warning = ""
	if n == 0 {
		c.phase = PhaseExhausted
		return
	}
	c.phase = PhasePresenting
}

func (c *cursor) clear() {
	c.feedback = ""
	c.correct = nil
}

func (c *cursor) done() bool {
	return c.phase == PhaseExhausted
}

// accepting reports whether the current item takes an answer, moving a
// presented item into the awaiting phase.
func (c *cursor) accepting() bool {
	switch c.phase {
	case PhasePresenting:
		c.phase = PhaseAwaiting
		return true
	case PhaseAwaiting:
		return true
	}
	return false
}

// evaluate records the answer to the current item. Points are added only the
// first time an item is attempted.
func (c *cursor) evaluate(points int, correct bool, feedback string) Result {
	if !c.tracker.Attempted(c.index) {
		c.tracker.Mark(c.index)
		c.score += points
	}
	c.phase = PhaseEvaluated
	c.feedback = feedback
	c.correct = boolPtr(correct)
	c.warning = ""
	return Result{Correct: boolPtr(correct), Feedback: feedback}
}

// next moves to the next unattempted item. At the end of the list it either
// exhausts the block or rewinds to the first unattempted item.
func (c *cursor) next() Result {
	if c.done() {
		return ignored()
	}
	c.clear()
	c.warning = ""

	i := c.index + 1
	for i < c.n && c.tracker.Attempted(i) {
		i++
	}
	if i < c.n {
		c.present(i)
		return Result{}
	}

	if c.tracker.All() {
		c.phase = PhaseExhausted
		return Result{Done: true}
	}
	first, _ := c.tracker.FirstUnattempted()
	c.present(first)
	c.warning = UnattemptedWarning
	return Result{Warning: UnattemptedWarning}
}

func (c *cursor) present(i int) {
	c.index = i
	c.phase = PhasePresenting
}

// advance handles Continue after evaluation and Skip before it.
func (c *cursor) advance(ev Event) (Result, bool) {
	switch ev.(type) {
	case Continue:
		if c.phase != PhaseEvaluated {
			return ignored(), true
		}
		return c.next(), true
	case Skip:
		if c.phase != PhasePresenting && c.phase != PhaseAwaiting {
			return ignored(), true
		}
		return c.next(), true
	}
	return Result{}, false
}

// finish exhausts the block regardless of attempts, as the flashcard timer
// does after filling the tracker.
func (c *cursor) finish() {
	c.tracker.FillAll()
	c.phase = PhaseExhausted
	c.clear()
}

// baseView fills the fields common to every handler.
func (c *cursor) baseView(v View) View {
	v.Index = c.index
	v.Total = c.n
	v.Attempted = c.tracker.Count()
	v.Phase = c.phase
	v.Score = c.score
	v.Feedback = c.feedback
	v.Correct = c.correct
	v.Warning = c.warning
	return v
}
