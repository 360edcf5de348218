// Package attempt records which items of a block have been attempted.
package attempt

// Tracker is a per-block record of attempted items. Flags only ever go from
// false to true.
type Tracker struct {
	flags []bool
}

// New creates a tracker for n items, none attempted.
func New(n int) *Tracker {
	if n < 0 {
		n = 0
	}
	return &Tracker{flags: make([]bool, n)}
}

// Mark records item i as attempted. Marking twice, or marking an index out
// of range, has no effect.
func (t *Tracker) Mark(i int) {
	if i < 0 || i >= len(t.flags) {
		return
	}
	t.flags[i] = true
}

// FillAll marks every item attempted.
func (t *Tracker) FillAll() {
	for i := range t.flags {
		t.flags[i] = true
	}
}

// Attempted reports whether item i has been attempted.
func (t *Tracker) Attempted(i int) bool {
	if i < 0 || i >= len(t.flags) {
		return false
	}
	return t.flags[i]
}

// All reports whether every item has been attempted. A tracker with no
// items is trivially complete.
func (t *Tracker) All() bool {
	for _, f := range t.flags {
		if !f {
			return false
		}
	}
	return true
}

// FirstUnattempted returns the lowest index not yet attempted.
func (t *Tracker) FirstUnattempted() (int, bool) {
	for i, f := range t.flags {
		if !f {
			return i, true
		}
	}
	return 0, false
}

// Count returns the number of attempted items.
func (t *Tracker) Count() int {
	n := 0
	for _, f := range t.flags {
		if f {
			n++
		}
	}
	return n
}

// Len returns the number of items tracked.
func (t *Tracker) Len() int {
	return len(t.flags)
}
