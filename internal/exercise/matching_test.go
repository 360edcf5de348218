package exercise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexchase32/lessbuilder/internal/lesson"
)

// Two blue cards, three white cards, three declared pairs.
func matchingConfig() lesson.MatchingConfig {
	return lesson.MatchingConfig{Exercises: []lesson.MatchingExercise{{
		BlueCards: []lesson.MatchCard{
			{ID: "b1", Text: "Yo"},
			{ID: "b2", Text: "Nosotros"},
		},
		WhiteCards: []lesson.MatchCard{
			{ID: "w1", Text: "soy alto"},
			{ID: "w2", Text: "tengo hambre"},
			{ID: "w3", Text: "somos amigos"},
		},
		Matches: map[lesson.ID][]lesson.ID{
			"b1": {"w1", "w2"},
			"b2": {"w3"},
		},
	}}}
}

func pair(h Handler, blue, white int) Result {
	h.HandleEvent(SelectBlue{Index: blue})
	return h.HandleEvent(SelectWhite{Index: white})
}

func TestMatching_AllPairsIsFullBlock(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, matchingConfig())

	pair(h, 0, 0)
	pair(h, 1, 2)
	assert.Equal(t, 0, h.View().Attempted, "not attempted until every pair is matched")
	res := pair(h, 0, 1)
	require.NotNil(t, res.Correct)
	assert.True(t, *res.Correct)
	assert.Equal(t, PhaseEvaluated, h.View().Phase)

	res = h.HandleEvent(Continue{})
	assert.True(t, res.Done)
	assert.Equal(t, 100, h.Score())
}

func TestMatching_WrongAttemptCostsThree(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, matchingConfig())

	pair(h, 0, 0)
	res := pair(h, 1, 0)
	require.NotNil(t, res.Correct)
	assert.False(t, *res.Correct)
	assert.InDelta(t, 100.0/3-3, h.(*Matching).Tally(), 1e-9)

	pair(h, 1, 2)
	pair(h, 0, 1)
	h.HandleEvent(Continue{})
	assert.Equal(t, 97, h.Score())
}

func TestMatching_PenaltyFloorsAtZero(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, matchingConfig())

	pair(h, 1, 0)
	pair(h, 1, 1)
	assert.Zero(t, h.(*Matching).Tally())

	pair(h, 0, 0)
	pair(h, 0, 1)
	pair(h, 1, 2)
	assert.Equal(t, 100, h.Score())
}

func TestMatching_RepeatedPairIgnored(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, matchingConfig())

	pair(h, 0, 0)
	assert.True(t, h.HandleEvent(SelectWhite{Index: 0}).Ignored, "no blue card selected")
	res := pair(h, 0, 0)
	assert.True(t, res.Ignored)
	assert.InDelta(t, 100.0/3, h.(*Matching).Tally(), 1e-9)
}

func TestMatching_MatchedBlueCardLocks(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, matchingConfig())

	pair(h, 1, 2)
	assert.True(t, h.HandleEvent(SelectBlue{Index: 1}).Ignored)
	v := h.View()
	assert.Equal(t, MarkMatched, v.Options[1].Mark)
	assert.Equal(t, MarkMatched, v.Pairs[2].Mark)
	assert.Equal(t, []string{"Nosotros ↔ somos amigos"}, v.Details)
}

func TestMatching_SkipKeepsProgress(t *testing.T) {
	cfg := matchingConfig()
	cfg.Exercises = append(cfg.Exercises, cfg.Exercises[0])
	h := start(t, lesson.TypeSentenceMatching, cfg)

	pair(h, 0, 0)
	h.HandleEvent(Skip{})
	assert.Equal(t, 1, h.View().Index)

	pair(h, 0, 0)
	pair(h, 0, 1)
	pair(h, 1, 2)
	res := h.HandleEvent(Continue{})
	assert.Equal(t, UnattemptedWarning, res.Warning)
	assert.Equal(t, "1 of 3 matches", h.View().Prompt)

	pair(h, 0, 1)
	pair(h, 1, 2)
	res = h.HandleEvent(Continue{})
	assert.True(t, res.Done)
	assert.Equal(t, 200, h.Score())
}

func TestMatching_ExerciseWithoutPairs(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, lesson.MatchingConfig{
		Exercises: []lesson.MatchingExercise{{BlueCards: []lesson.MatchCard{{ID: "1", Text: "x"}}}},
	})
	assert.Equal(t, PhaseEvaluated, h.View().Phase)
	assert.True(t, h.HandleEvent(Continue{}).Done)
	assert.Equal(t, 0, h.Score())
}

func TestMatching_DuplicatePairCountsOnce(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, lesson.MatchingConfig{Exercises: []lesson.MatchingExercise{{
		BlueCards:  []lesson.MatchCard{{ID: "b1", Text: "Yo"}},
		WhiteCards: []lesson.MatchCard{{ID: "w1", Text: "soy alto"}},
		Matches:    map[lesson.ID][]lesson.ID{"b1": {"w1", "w1"}},
	}}})

	assert.Equal(t, "0 of 1 matches", h.View().Prompt)
	pair(h, 0, 0)
	assert.Equal(t, PhaseEvaluated, h.View().Phase)
	assert.True(t, h.HandleEvent(Continue{}).Done)
	assert.Equal(t, 100, h.Score())
}

func TestMatching_PairsWithoutCardsDropped(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, lesson.MatchingConfig{Exercises: []lesson.MatchingExercise{{
		BlueCards:  []lesson.MatchCard{{ID: "b1", Text: "Yo"}},
		WhiteCards: []lesson.MatchCard{{ID: "w1", Text: "soy alto"}},
		Matches:    map[lesson.ID][]lesson.ID{"b1": {"w1", "w9"}, "b7": {"w1"}},
	}}})

	pair(h, 0, 0)
	assert.True(t, h.HandleEvent(Continue{}).Done)
	assert.True(t, h.Complete())
	assert.Equal(t, 100, h.Score())
}

func TestMatching_OnlyDanglingPairsAutoEvaluates(t *testing.T) {
	h := start(t, lesson.TypeSentenceMatching, lesson.MatchingConfig{Exercises: []lesson.MatchingExercise{{
		BlueCards: []lesson.MatchCard{{ID: "b1", Text: "Yo"}},
		Matches:   map[lesson.ID][]lesson.ID{"b1": {"w9"}},
	}}})

	assert.Equal(t, PhaseEvaluated, h.View().Phase)
	assert.True(t, h.HandleEvent(Continue{}).Done)
	assert.Equal(t, 0, h.Score())
}
