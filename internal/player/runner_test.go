package player

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexchase32/lessbuilder/internal/exercise"
	"github.com/alexchase32/lessbuilder/internal/lesson"
)

func block(t *testing.T, bt lesson.BlockType, cfg any) lesson.Block {
	t.Helper()
	b, err := lesson.NewBlock(bt, cfg)
	require.NoError(t, err)
	return b
}

func rawBlock(bt lesson.BlockType, cfg string) lesson.Block {
	return lesson.Block{ID: 1, Type: bt, Config: json.RawMessage(cfg)}
}

func testLesson(blocks ...lesson.Block) *lesson.Lesson {
	return &lesson.Lesson{Name: "Lección 1", Date: "2024-03-01", Blocks: blocks}
}

func deck(t *testing.T, limit int) lesson.Block {
	return block(t, lesson.TypeFlashcard, lesson.FlashcardConfig{
		TimeLimit: lesson.Int(limit),
		Cards: []lesson.Card{
			{English: "hello", Spanish: "hola"},
			{English: "cat", Spanish: "gato"},
			{English: "house", Spanish: "casa"},
		},
	})
}

func oneSentence(t *testing.T) lesson.Block {
	return block(t, lesson.TypeTranslation, lesson.TranslationConfig{
		Sentences: []lesson.Sentence{{Sentence: "I am tall", CorrectAnswer: "Soy alto"}},
	})
}

func TestStart_NoLesson(t *testing.T) {
	for name, l := range map[string]*lesson.Lesson{
		"nil":       nil,
		"no blocks": testLesson(),
	} {
		t.Run(name, func(t *testing.T) {
			r := New()
			r.Start(l)
			assert.Equal(t, StateNoLesson, r.State())
			assert.True(t, r.Dispatch(exercise.Submit{Text: "hola"}).Ignored)
			assert.True(t, r.Abandon().Ignored)
			assert.Equal(t, 0, r.Total())
			assert.Nil(t, r.Current())
		})
	}
}

func TestRunner_PlaysBlocksInOrder(t *testing.T) {
	var seen []BlockResult
	r := New(WithObserver(func(res BlockResult) { seen = append(seen, res) }))
	r.Start(testLesson(oneSentence(t), oneSentence(t)))

	require.Equal(t, StatePlaying, r.State())
	assert.Equal(t, lesson.TypeTranslation, r.Current().Type())

	r.Dispatch(exercise.Submit{Text: "soy alto"})
	out := r.Dispatch(exercise.Continue{})
	require.True(t, out.BlockDone())
	assert.False(t, out.Finished)
	assert.Equal(t, 100, out.Completed[0].Score)
	assert.Equal(t, 1, r.Index())
	assert.Equal(t, 100, r.Total())

	r.Dispatch(exercise.Submit{Text: "no sé"})
	out = r.Dispatch(exercise.Continue{})
	assert.True(t, out.Finished)
	assert.Equal(t, StateFinished, r.State())
	assert.Equal(t, 100, r.Total())

	require.Len(t, seen, 2)
	assert.Equal(t, 0, seen[0].Index)
	assert.Equal(t, 1, seen[1].Index)
	assert.Equal(t, 100, seen[1].Total)

	assert.True(t, r.Dispatch(exercise.Submit{Text: "soy alto"}).Ignored)
	assert.Equal(t, 100, r.Total(), "total is frozen once finished")
}

func TestRunner_FlashcardTimerExpiry(t *testing.T) {
	r := New()
	r.Start(testLesson(deck(t, 30), oneSentence(t)))

	r.Dispatch(exercise.Submit{Text: "hola"})
	gen := r.Generation()
	out := r.TimerExpired(gen)

	require.True(t, out.BlockDone())
	assert.True(t, out.Completed[0].Expired)
	assert.Equal(t, 1, out.Completed[0].Score)
	assert.Equal(t, 1, r.Total())
	assert.Equal(t, 1, r.Index())
	assert.Equal(t, lesson.TypeTranslation, r.Current().Type())

	assert.True(t, r.TimerExpired(gen).Ignored, "stale timer")
	assert.Equal(t, 1, r.Total())
	assert.Equal(t, 1, r.Index())
}

func TestRunner_TickCountsDown(t *testing.T) {
	r := New()
	r.Start(testLesson(deck(t, 2)))

	left, ok := r.Remaining()
	require.True(t, ok)
	assert.Equal(t, 2, left)

	gen := r.Generation()
	assert.True(t, r.Tick(gen+1).Ignored)
	out := r.Tick(gen)
	assert.False(t, out.Ignored)
	assert.False(t, out.BlockDone())
	left, _ = r.Remaining()
	assert.Equal(t, 1, left)

	out = r.Tick(gen)
	assert.True(t, out.Finished)
	assert.Equal(t, StateFinished, r.State())
	assert.Equal(t, 0, r.Total())
	_, ok = r.Remaining()
	assert.False(t, ok)
}

func TestRunner_TimerCancelledByNaturalCompletion(t *testing.T) {
	r := New()
	r.Start(testLesson(deck(t, 60), deck(t, 60)))

	gen := r.Generation()
	for _, a := range []string{"hola", "gato", "casa"} {
		r.Dispatch(exercise.Submit{Text: a})
	}
	assert.Equal(t, 1, r.Index())
	assert.Equal(t, 3, r.Total())

	assert.True(t, r.Tick(gen).Ignored)
	assert.True(t, r.TimerExpired(gen).Ignored)
	left, ok := r.Remaining()
	assert.True(t, ok)
	assert.Equal(t, 60, left, "second deck has its own countdown")
}

func TestRunner_SkipsUnplayableBlocks(t *testing.T) {
	var seen []BlockResult
	r := New(WithObserver(func(res BlockResult) { seen = append(seen, res) }))
	r.Start(testLesson(
		rawBlock("quiz", `{}`),
		rawBlock(lesson.TypeTranslation, `{"sentences": 3}`),
		rawBlock(lesson.TypeHotspot, `{"hotspots": []}`),
		oneSentence(t),
	))

	require.Equal(t, StatePlaying, r.State())
	assert.Equal(t, 3, r.Index())
	started := r.TakeStarted()
	require.Len(t, started, 3)
	assert.True(t, started[0].Skipped)
	assert.ErrorIs(t, started[0].Err, lesson.ErrUnknownBlockType)
	assert.True(t, started[1].Skipped)
	assert.False(t, started[2].Skipped, "zero-item block completes normally")
	assert.Len(t, seen, 3)
	assert.Empty(t, r.TakeStarted())
}

func TestRunner_OnlyZeroItemBlocksFinishesAtStart(t *testing.T) {
	r := New()
	r.Start(testLesson(rawBlock(lesson.TypeConversation, `{"questions": []}`)))
	assert.Equal(t, StateFinished, r.State())
	assert.Equal(t, 0, r.Total())
}

func TestRunner_MigratesLegacyBlocks(t *testing.T) {
	r := New()
	r.Start(testLesson(rawBlock(lesson.TypeTranslation, `{"sentence": "I am tall", "correctAnswer": "Soy alto"}`)))

	assert.Equal(t, lesson.VersionCurrent, r.Block().Version)
	r.Dispatch(exercise.Submit{Text: "Soy alto"})
	out := r.Dispatch(exercise.Continue{})
	assert.True(t, out.Finished)
	assert.Equal(t, 100, r.Total())
}

func TestRunner_AbandonScoresZero(t *testing.T) {
	r := New()
	r.Start(testLesson(deck(t, 60), oneSentence(t)))

	r.Dispatch(exercise.Submit{Text: "hola"})
	out := r.Abandon()
	require.True(t, out.BlockDone())
	assert.True(t, out.Completed[0].Skipped)
	assert.Equal(t, 0, r.Total())
	assert.Equal(t, 1, r.Index())
}

func TestRunner_RestartResetsSession(t *testing.T) {
	r := New()
	l := testLesson(oneSentence(t))
	r.Start(l)
	r.Dispatch(exercise.Submit{Text: "soy alto"})
	r.Dispatch(exercise.Continue{})
	require.Equal(t, 100, r.Total())

	gen := r.Generation()
	r.Start(l)
	assert.Equal(t, StatePlaying, r.State())
	assert.Equal(t, 0, r.Total())
	assert.Empty(t, r.Results())
	assert.Greater(t, r.Generation(), gen)
}
