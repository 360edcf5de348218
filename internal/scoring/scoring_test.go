package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsPerItem(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 0}, {-1, 0}, {1, 100}, {3, 33}, {4, 25}, {7, 14},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsPerItem(tt.n), "n=%d", tt.n)
	}
}

func TestHighlightRaw(t *testing.T) {
	correct := []string{"diseñadora", "trabaja", "estudio"}

	tests := []struct {
		name     string
		selected []string
		keyWord  string
		want     int
	}{
		{"exact", []string{"estudio", "diseñadora", "trabaja"}, "", 100},
		{"key word alone", []string{"diseñadora"}, "diseñadora", 50},
		{"other word alone", []string{"trabaja"}, "diseñadora", 25},
		{"single without key word configured", []string{"diseñadora"}, "", 25},
		{"two correct", []string{"trabaja", "estudio"}, "diseñadora", 75},
		{"nothing selected", nil, "diseñadora", 0},
		{"one wrong, two right", []string{"trabaja", "estudio", "la"}, "", 10},
		{"more wrong than right", []string{"la", "en", "trabaja"}, "", 0},
		{"each selection counts", []string{"trabaja", "trabaja"}, "", 75},
		{"exact with a repeat", []string{"trabaja", "estudio", "diseñadora", "trabaja"}, "", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HighlightRaw(tt.selected, correct, tt.keyWord))
		})
	}
}

func TestHighlightRaw_RepeatedWrongWord(t *testing.T) {
	// "el gato y el perro" with both nouns and both articles selected.
	selected := []string{"el", "gato", "el", "perro"}
	assert.Equal(t, 0, HighlightRaw(selected, []string{"gato", "perro"}, ""))
	assert.Equal(t, 10, HighlightRaw([]string{"el", "gato", "perro"}, []string{"gato", "perro"}, ""))
}

func TestHighlightRaw_NoCorrectWords(t *testing.T) {
	assert.Equal(t, 100, HighlightRaw(nil, nil, ""))
	assert.Equal(t, 0, HighlightRaw([]string{"el"}, nil, ""))
}

func TestHighlightScaled(t *testing.T) {
	// A one-item block: exact match earns the full share.
	assert.Equal(t, 100, Highlight([]string{"a", "b"}, []string{"a", "b"}, "", PointsPerItem(1)))
	// 75% of floor(100/3) = floor(24.75)
	assert.Equal(t, 24, Highlight([]string{"a", "b"}, []string{"a", "b", "c"}, "", PointsPerItem(3)))
}

func TestPickPicture(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		correct  []int
		ppi      int
		want     int
	}{
		{"exact in any order", []int{2, 0}, []int{0, 2}, 50, 50},
		{"half right", []int{0}, []int{0, 2}, 50, 25},
		{"half right one wrong", []int{0, 1}, []int{0, 2}, 50, 12},
		{"all wrong", []int{1, 3}, []int{0, 2}, 50, 0},
		{"superset", []int{0, 1, 2}, []int{0, 2}, 100, 75},
		{"no correct answers declared", []int{1}, nil, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PickPicture(tt.selected, tt.correct, tt.ppi))
		})
	}
}

func TestPair(t *testing.T) {
	assert.Equal(t, 33, Pair(true, true, 33))
	assert.Equal(t, 16, Pair(true, false, 33))
	assert.Equal(t, 16, Pair(false, true, 33))
	assert.Equal(t, 0, Pair(false, false, 33))
}

func TestMatchTally(t *testing.T) {
	m := NewMatchTally(3)
	m.Correct()
	m.Correct()
	assert.False(t, m.Done())
	m.Correct()
	assert.True(t, m.Done())
	assert.Equal(t, 100, m.Round())

	// Extra correct calls past the total do not add points.
	m.Correct()
	assert.Equal(t, 3, m.Matched())
	assert.Equal(t, 100, m.Round())
}

func TestMatchTallyPenalty(t *testing.T) {
	m := NewMatchTally(3)
	m.Wrong()
	assert.Equal(t, 0.0, m.Points(), "penalty floors at zero")

	m.Correct()
	m.Wrong()
	m.Correct()
	m.Correct()
	assert.True(t, m.Done())
	assert.Equal(t, 97, m.Round())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "hola", Normalize("  Hola "))
	// Decomposed e + combining acute matches the composed form.
	assert.True(t, Equal("este\u0301", "est\u00e9"))
	assert.False(t, Equal("este", "esté"))
}

func TestNormalizeSpeech(t *testing.T) {
	assert.Equal(t, "cómo estás", NormalizeSpeech("¿Cómo   estás?"))
	assert.True(t, SpeechEqual("¡Hola, María!", "hola maría"))
	assert.True(t, Contains("pues hola cómo estás amigo", "¿Cómo estás?"))
	assert.False(t, Contains("buenos días", "¿Cómo estás?"))
}

func TestContainsAll(t *testing.T) {
	ok, missing := ContainsAll("Ella está BIEN y es de Madrid", []string{"está bien", "de madrid"})
	assert.True(t, ok)
	assert.Empty(t, missing)

	ok, missing = ContainsAll("Ella está bien", []string{"está bien", "de madrid"})
	assert.False(t, ok)
	assert.Equal(t, []string{"de madrid"}, missing)
}

func TestWord(t *testing.T) {
	assert.Equal(t, "diseñadora", Word("Diseñadora,"))
	assert.Equal(t, "hola", Word("¡Hola!"))
}
