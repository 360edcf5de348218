package lesson

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlLesson = `
name: Saludos
date: "2024-05-01"
blocks:
  - id: 1714550000000
    type: flashcard
    config:
      instructions: Translate the words
      timeLimit: 60
      cards:
        - english: hello
          spanish: hola
  - id: 1714550000001
    type: sentencematching
    config:
      exercises:
        - blueCards: [{id: 1, text: "Yo"}]
          whiteCards: [{id: 2, text: "soy alto"}]
          matches:
            1: [2]
`

func TestDecodeYAML(t *testing.T) {
	l, err := Decode([]byte(yamlLesson))
	require.NoError(t, err)

	assert.Equal(t, "Saludos", l.Name)
	assert.Equal(t, "2024-05-01", l.Date)
	require.Len(t, l.Blocks, 2)
	assert.Equal(t, int64(1714550000000), l.Blocks[0].ID)
	assert.Equal(t, TypeFlashcard, l.Blocks[0].Type)

	fc, err := DecodeConfig[FlashcardConfig](l.Blocks[0])
	require.NoError(t, err)
	assert.Equal(t, Int(60), fc.TimeLimit)
	assert.Equal(t, "hola", fc.Cards[0].Spanish)

	mc, err := DecodeConfig[MatchingConfig](l.Blocks[1])
	require.NoError(t, err)
	assert.Equal(t, []ID{"2"}, mc.Exercises[0].Matches["1"])

	require.NoError(t, Validate(l))
}

func TestDecodeJSON(t *testing.T) {
	l, err := Decode([]byte(`{"name":"N","date":"D","blocks":[{"id":5,"type":"accent","config":{"sentences":[]}}]}`))
	require.NoError(t, err)
	assert.Equal(t, TypeAccent, l.Blocks[0].Type)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(""))
	assert.Error(t, err)

	_, err = Decode([]byte("name: [unterminated"))
	assert.Error(t, err)
}

func TestWriteReadFile(t *testing.T) {
	l, err := Decode([]byte(yamlLesson))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"lesson.yaml", "lesson.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, l))

		back, err := ReadFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, l.Name, back.Name)
		require.Len(t, back.Blocks, 2)
		assert.JSONEq(t, string(l.Blocks[0].Config), string(back.Blocks[0].Config), name)
		assert.JSONEq(t, string(l.Blocks[1].Config), string(back.Blocks[1].Config), name)
	}
}
