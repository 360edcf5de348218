package draft

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/llm"
)

const flashcards = `{"instructions":"Flip each card.","timeLimit":60,"cards":[
  {"english":"the dog","spanish":"el perro"},
  {"english":"the cat","spanish":"el gato"}]}`

func newService(replies ...llm.MockReply) (*Service, *llm.Mock) {
	mock := llm.NewMock(replies...)
	s := NewService(mock, DefaultConfig())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s, mock
}

func TestBlock(t *testing.T) {
	s, mock := newService(llm.MockReply{Content: json.RawMessage(flashcards)})

	b, err := s.Block(context.Background(), Input{Type: lesson.TypeFlashcard, Topic: " animals ", Items: 2, Level: "A1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), b.ID)
	assert.Equal(t, lesson.TypeFlashcard, b.Type)
	assert.Equal(t, lesson.VersionCurrent, b.Version)

	cfg, err := lesson.DecodeConfig[lesson.FlashcardConfig](b)
	require.NoError(t, err)
	assert.Len(t, cfg.Cards, 2)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Prompt, "Topic: animals")
	assert.Contains(t, reqs[0].Prompt, "Number of items: 2")
	assert.Contains(t, reqs[0].Prompt, "Level: A1")
	assert.Equal(t, "block-flashcard", reqs[0].Schema.Name)
	assert.NotEmpty(t, reqs[0].Schema.Definition)
}

func TestBlockItemLimits(t *testing.T) {
	s, mock := newService(
		llm.MockReply{Content: json.RawMessage(flashcards)},
		llm.MockReply{Content: json.RawMessage(flashcards)},
	)
	_, err := s.Block(context.Background(), Input{Type: lesson.TypeFlashcard, Topic: "food"})
	require.NoError(t, err)
	_, err = s.Block(context.Background(), Input{Type: lesson.TypeFlashcard, Topic: "food", Items: 99})
	require.NoError(t, err)

	reqs := mock.Requests()
	assert.Contains(t, reqs[0].Prompt, "Number of items: 5")
	assert.Contains(t, reqs[1].Prompt, "Number of items: 20")
}

func TestBlockRejectsBadInput(t *testing.T) {
	s, mock := newService()

	_, err := s.Block(context.Background(), Input{Type: "quiz", Topic: "x"})
	assert.ErrorIs(t, err, lesson.ErrUnknownBlockType)

	_, err = s.Block(context.Background(), Input{Type: lesson.TypeAccent, Topic: "  "})
	assert.Error(t, err)
	assert.Empty(t, mock.Requests())
}

func TestBlockSchemaViolation(t *testing.T) {
	s, _ := newService(llm.MockReply{Content: json.RawMessage(`{"cards":[{"english":"dog"}]}`)})

	_, err := s.Block(context.Background(), Input{Type: lesson.TypeFlashcard, Topic: "pets"})
	assert.ErrorIs(t, err, llm.ErrInvalidResponse)
}

func TestBlockEmpty(t *testing.T) {
	s, _ := newService(llm.MockReply{Content: json.RawMessage(`{"cards":[]}`)})

	_, err := s.Block(context.Background(), Input{Type: lesson.TypeFlashcard, Topic: "pets"})
	assert.ErrorIs(t, err, ErrEmptyDraft)
}

func TestBlockProviderError(t *testing.T) {
	s, _ := newService(llm.MockReply{Err: &llm.ProviderError{Kind: llm.ErrRateLimit}})

	_, err := s.Block(context.Background(), Input{Type: lesson.TypeFlashcard, Topic: "pets"})
	assert.True(t, errors.Is(err, llm.ErrRateLimit))
	assert.True(t, strings.HasPrefix(err.Error(), "draft flashcard"))
}

func TestAppendBumpsDuplicateIDs(t *testing.T) {
	l := &lesson.Lesson{Name: "n", Date: "d", Blocks: []lesson.Block{{ID: 10}, {ID: 11}}}
	b := Append(l, lesson.Block{ID: 10, Type: lesson.TypeAccent})
	assert.Equal(t, int64(12), b.ID)
	assert.Len(t, l.Blocks, 3)
	assert.Equal(t, int64(12), l.Blocks[2].ID)
}

func TestEveryTypeHasGuidance(t *testing.T) {
	for _, typ := range lesson.AllTypes {
		assert.NotEmpty(t, guidance[typ], typ)
		assert.NotNil(t, lesson.ConfigSchema(typ), typ)
	}
}
