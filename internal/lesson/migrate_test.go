package lesson

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateLegacyTranslation(t *testing.T) {
	b := Block{
		ID:     1,
		Type:   TypeTranslation,
		Config: json.RawMessage(`{"instructions":"Translate","sentence":"I am tall","correctAnswer":"Soy alto","vocabulary":["alto"]}`),
	}

	got, err := Migrate(b)
	require.NoError(t, err)
	assert.Equal(t, VersionCurrent, got.Version)

	cfg, err := DecodeConfig[TranslationConfig](got)
	require.NoError(t, err)
	assert.Equal(t, "Translate", cfg.Instructions)
	require.Len(t, cfg.Sentences, 1)
	assert.Equal(t, Sentence{Sentence: "I am tall", CorrectAnswer: "Soy alto", Vocabulary: []string{"alto"}}, cfg.Sentences[0])
}

func TestMigrateLegacySpelling(t *testing.T) {
	b := Block{
		ID:     2,
		Type:   TypeSpellingQuiz,
		Config: json.RawMessage(`{"title":"Quiz","spellingWord":"c_sa","spellingAnswer":"casa"}`),
	}

	got, err := Migrate(b)
	require.NoError(t, err)

	cfg, err := DecodeConfig[SpellingConfig](got)
	require.NoError(t, err)
	require.Len(t, cfg.Exercises, 1)
	assert.Equal(t, "casa", cfg.Exercises[0].Word)
	assert.Equal(t, "c_sa", cfg.Exercises[0].Hint)
	assert.Equal(t, []string{"a"}, cfg.Exercises[0].Answer)
}

func TestMigrateCurrentUnchanged(t *testing.T) {
	raw := json.RawMessage(`{"sentences":[{"sentence":"Hi","correctAnswer":"Hola","vocabulary":[]}]}`)
	b := Block{ID: 3, Type: TypeTranslation, Config: raw}

	got, err := Migrate(b)
	require.NoError(t, err)
	assert.Equal(t, VersionCurrent, got.Version)
	assert.JSONEq(t, string(raw), string(got.Config))

	// Migrating twice is a no-op.
	again, err := Migrate(got)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestMigrateExplicitLegacyVersion(t *testing.T) {
	b := Block{
		Type:    TypeTranslation,
		Version: VersionLegacy,
		Config:  json.RawMessage(`{"sentence":"Bye","correctAnswer":"Adiós"}`),
	}
	got, err := Migrate(b)
	require.NoError(t, err)

	cfg, err := DecodeConfig[TranslationConfig](got)
	require.NoError(t, err)
	require.Len(t, cfg.Sentences, 1)
	assert.Empty(t, cfg.Sentences[0].Vocabulary)
}

func TestMigrateLesson(t *testing.T) {
	l := &Lesson{Name: "L", Date: "d", Blocks: []Block{
		{ID: 1, Type: TypeTranslation, Config: json.RawMessage(`{"sentence":"a","correctAnswer":"b"}`)},
		{ID: 2, Type: TypeFlashcard, Config: json.RawMessage(`{"cards":[]}`)},
	}}
	require.NoError(t, MigrateLesson(l))
	for _, b := range l.Blocks {
		assert.Equal(t, VersionCurrent, b.Version)
	}

	bad := &Lesson{Blocks: []Block{{ID: 1, Type: TypeTranslation, Config: json.RawMessage(`[1,2]`)}}}
	assert.Error(t, MigrateLesson(bad))
}

func TestValidate(t *testing.T) {
	good := &Lesson{Name: "Saludos", Date: "2024-05-01", Blocks: []Block{
		{ID: 1, Type: TypeFlashcard, Config: json.RawMessage(`{"instructions":"x","timeLimit":"60","cards":[{"english":"hello","spanish":"hola"}]}`)},
		{ID: 2, Type: TypeTranslation, Config: json.RawMessage(`{"sentence":"a","correctAnswer":"b","vocabulary":[]}`)},
		{ID: 3, Type: TypeSentenceMatching, Config: json.RawMessage(`{"exercises":[{"blueCards":[{"id":1,"text":"Yo"}],"whiteCards":[{"id":2,"text":"soy"}],"matches":{"1":[2]}}]}`)},
	}}
	require.NoError(t, Validate(good))

	bad := &Lesson{Name: "Saludos", Date: "2024-05-01", Blocks: []Block{
		{ID: 1, Type: TypeFlashcard, Config: json.RawMessage(`{"cards":[{"english":"hello"}]}`)},
		{ID: 2, Type: TypeAccent, Config: json.RawMessage(`{"sentences":"nope"}`)},
	}}
	err := Validate(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var be *BlockError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 0, be.Index)
	assert.Contains(t, err.Error(), "block 1 (accent)")
}

func TestConfigSchemaCoversAllTypes(t *testing.T) {
	for _, bt := range AllTypes {
		s := ConfigSchema(bt)
		require.NotNil(t, s, bt)
		assert.Equal(t, "object", s["type"])
	}
	assert.Nil(t, ConfigSchema("crossword"))
}
