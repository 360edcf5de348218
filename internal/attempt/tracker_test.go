package attempt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTracker(t *testing.T) {
	tr := New(3)
	assert.Equal(t, 3, tr.Len())
	assert.False(t, tr.All())
	assert.Equal(t, 0, tr.Count())

	i, ok := tr.FirstUnattempted()
	assert.True(t, ok)
	assert.Equal(t, 0, i)
}

func TestEmptyTrackerIsComplete(t *testing.T) {
	for _, n := range []int{0, -2} {
		tr := New(n)
		assert.True(t, tr.All())
		_, ok := tr.FirstUnattempted()
		assert.False(t, ok)
	}
}

func TestMarkIsIdempotent(t *testing.T) {
	tr := New(2)
	tr.Mark(1)
	tr.Mark(1)
	assert.True(t, tr.Attempted(1))
	assert.Equal(t, 1, tr.Count())

	i, ok := tr.FirstUnattempted()
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	tr.Mark(0)
	assert.True(t, tr.All())
	_, ok = tr.FirstUnattempted()
	assert.False(t, ok)
}

func TestMarkOutOfRange(t *testing.T) {
	tr := New(2)
	tr.Mark(-1)
	tr.Mark(2)
	assert.Equal(t, 0, tr.Count())
	assert.False(t, tr.Attempted(5))
}

func TestFillAll(t *testing.T) {
	tr := New(4)
	tr.Mark(2)
	tr.FillAll()
	assert.True(t, tr.All())
	assert.Equal(t, 4, tr.Count())
}

// Rewinding to the first unattempted item and marking it must always make
// progress, so the rewind loop terminates.
func TestFirstUnattemptedAdvances(t *testing.T) {
	tr := New(5)
	tr.Mark(1)
	tr.Mark(3)

	prev := -1
	steps := 0
	for {
		i, ok := tr.FirstUnattempted()
		if !ok {
			break
		}
		assert.Greater(t, i, prev)
		prev = i
		tr.Mark(i)
		steps++
		if steps > tr.Len() {
			t.Fatal("rewind loop did not terminate")
		}
	}
	assert.Equal(t, 3, steps)
	assert.True(t, tr.All())
}
