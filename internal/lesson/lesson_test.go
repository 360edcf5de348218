package lesson

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlockType(t *testing.T) {
	for _, bt := range AllTypes {
		got, err := ParseBlockType(string(bt))
		require.NoError(t, err)
		assert.Equal(t, bt, got)
		assert.NotEmpty(t, bt.Label())
	}

	_, err := ParseBlockType("crossword")
	assert.True(t, errors.Is(err, ErrUnknownBlockType))
}

func TestLessonCheck(t *testing.T) {
	tests := []struct {
		name    string
		lesson  *Lesson
		wantErr bool
	}{
		{"nil", nil, true},
		{"missing name", &Lesson{Date: "2024-05-01", Blocks: []Block{}}, true},
		{"missing date", &Lesson{Name: "Saludos", Blocks: []Block{}}, true},
		{"nil blocks", &Lesson{Name: "Saludos", Date: "2024-05-01"}, true},
		{"empty blocks", &Lesson{Name: "Saludos", Date: "2024-05-01", Blocks: []Block{}}, false},
		{"unknown type", &Lesson{Name: "Saludos", Date: "2024-05-01", Blocks: []Block{{ID: 1, Type: "crossword"}}}, true},
		{"duplicate id", &Lesson{Name: "Saludos", Date: "2024-05-01", Blocks: []Block{
			{ID: 1, Type: TypeFlashcard}, {ID: 1, Type: TypeAccent},
		}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lesson.Check()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalid))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestDecodeConfigDefaults(t *testing.T) {
	b := Block{Type: TypeFlashcard, Config: json.RawMessage(`{"instructions":"Go","cards":[{"english":"dog","spanish":"perro"}]}`)}
	cfg, err := DecodeConfig[FlashcardConfig](b)
	require.NoError(t, err)
	assert.Equal(t, Int(DefaultTimeLimit), cfg.TimeLimit)
	assert.Len(t, cfg.Cards, 1)

	sb := Block{Type: TypeSpeakingListening, Config: json.RawMessage(`{"exercises":[{"expectedText":["bien"]}]}`)}
	sc, err := DecodeConfig[SpeakingConfig](sb)
	require.NoError(t, err)
	assert.Equal(t, "¿Cómo estás?", sc.Exercises[0].AskQuestion)
	assert.Equal(t, "Soy de España", sc.Exercises[0].SecondAnswer)

	cb := Block{Type: TypeConversation, Config: json.RawMessage(`{"questions":[]}`)}
	cc, err := DecodeConfig[ConversationConfig](cb)
	require.NoError(t, err)
	require.Len(t, cc.Characters, 2)
	assert.Equal(t, "Ana", cc.Characters[0].Name)
}

func TestFlexibleFields(t *testing.T) {
	raw := `{"exercises":[{"blueCards":[{"id":1,"text":"Yo"}],"whiteCards":[{"id":"3","text":"soy"}],"matches":{"1":[3]}}]}`
	cfg, err := DecodeConfig[MatchingConfig](Block{Type: TypeSentenceMatching, Config: json.RawMessage(raw)})
	require.NoError(t, err)

	ex := cfg.Exercises[0]
	assert.Equal(t, ID("1"), ex.BlueCards[0].ID)
	assert.Equal(t, ID("3"), ex.WhiteCards[0].ID)
	assert.Equal(t, []ID{"3"}, ex.Matches["1"])
	assert.Equal(t, 1, ex.TotalMatches())

	var n Int
	require.NoError(t, json.Unmarshal([]byte(`"45"`), &n))
	assert.Equal(t, Int(45), n)
	require.NoError(t, json.Unmarshal([]byte(`""`), &n))
	assert.Equal(t, Int(0), n)
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &n))
}

func TestItemCount(t *testing.T) {
	tests := []struct {
		typ  BlockType
		cfg  string
		want int
	}{
		{TypeFlashcard, `{"cards":[{"english":"a","spanish":"b"},{"english":"c","spanish":"d"}]}`, 2},
		{TypeHotspot, `{"hotspots":[{"label":"x"}]}`, 1},
		{TypeConversation, `{"questions":[]}`, 0},
		{TypeTranslation, `{}`, 0},
	}
	for _, tt := range tests {
		got, err := ItemCount(Block{Type: tt.typ, Config: json.RawMessage(tt.cfg)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.typ)
	}

	_, err := ItemCount(Block{Type: "crossword"})
	assert.True(t, errors.Is(err, ErrUnknownBlockType))
}

func TestMissingLetters(t *testing.T) {
	assert.Equal(t, []string{"a", "o"}, MissingLetters("gato", "g_t_"))
	assert.Equal(t, []string{"ñ", "o"}, MissingLetters("niño", "ni__"))
	assert.Equal(t, []string{"s"}, MissingLetters("casas", "casa"))
	assert.Nil(t, MissingLetters("sol", "sol"))
}

func TestMatchingNormalize(t *testing.T) {
	ex := MatchingExercise{
		BlueCards:  []MatchCard{{ID: "b1"}, {ID: "b2"}},
		WhiteCards: []MatchCard{{ID: "w1"}, {ID: "w2"}},
		Matches: map[ID][]ID{
			"b1": {"w1", "w1", "w2"},
			"b2": {"w9"},
			"b9": {"w1"},
		},
	}
	got := ex.Normalize()
	assert.Equal(t, map[ID][]ID{"b1": {"w1", "w2"}}, got.Matches)
	assert.Equal(t, 2, got.TotalMatches())
	assert.Equal(t, 5, ex.TotalMatches(), "original left untouched")
}
