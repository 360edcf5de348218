// Package scoring holds the point rules shared by the exercise handlers.
// Every function is pure and, apart from MatchTally, returns whole points.
package scoring

import "math"

// BlockTotal is the nominal value of a block scored per item.
const BlockTotal = 100

// PointsPerItem returns floor(100 / n), or 0 for an empty block.
func PointsPerItem(n int) int {
	if n <= 0 {
		return 0
	}
	return BlockTotal / n
}

// Flashcard returns the raw point for one card. Flashcards are not scaled
// to 100.
func Flashcard(correct bool) int {
	if correct {
		return 1
	}
	return 0
}

// Binary returns ppi for a correct answer and 0 otherwise.
func Binary(correct bool, ppi int) int {
	if correct {
		return ppi
	}
	return 0
}

// Scale converts a 0-100 raw score into a share of ppi, floored.
func Scale(raw, ppi int) int {
	if raw <= 0 || ppi <= 0 {
		return 0
	}
	return raw * ppi / BlockTotal
}

// Highlight tiers on the 0-100 raw scale.
const (
	HighlightExact   = 100
	HighlightSeveral = 75
	HighlightKeyWord = 50
	HighlightSome    = 25
)

// HighlightRaw grades a word selection on the 0-100 raw scale. Words are
// compared as given; callers normalize them first. Every selected word counts,
// so a word selected twice counts twice. keyWord may be empty, in which case
// the key word tier never applies. With no correct words declared, an empty
// selection is exact.
func HighlightRaw(selected, correct []string, keyWord string) int {
	want := toSet(correct)
	got := toSet(selected)

	var right, wrong int
	for _, w := range selected {
		if want[w] {
			right++
		} else {
			wrong++
		}
	}
	covered := true
	for w := range want {
		if !got[w] {
			covered = false
			break
		}
	}

	switch {
	case wrong == 0 && covered:
		return HighlightExact
	case wrong == 0 && right == 1 && keyWord != "" && got[keyWord] && want[keyWord]:
		return HighlightKeyWord
	case wrong == 0 && right >= 2:
		return HighlightSeveral
	case wrong == 0 && right > 0:
		return HighlightSome
	default:
		return max(0, 10*(right-wrong))
	}
}

// Highlight returns the points awarded for a word selection worth ppi.
func Highlight(selected, correct []string, keyWord string, ppi int) int {
	return Scale(HighlightRaw(selected, correct, keyWord), ppi)
}

// PickPicture grants ppi for an exact set match, otherwise
// floor(ppi * max(0, correct/total - 0.25*incorrect)).
func PickPicture(selected, correct []int, ppi int) int {
	want := toSet(correct)
	got := toSet(selected)
	if len(want) == 0 {
		return 0
	}

	var right, wrong int
	for i := range got {
		if want[i] {
			right++
		} else {
			wrong++
		}
	}
	if wrong == 0 && right == len(want) {
		return ppi
	}

	share := float64(right)/float64(len(want)) - float64(wrong)*0.25
	if share <= 0 {
		return 0
	}
	return int(math.Floor(float64(ppi) * share))
}

// Pair scores a two-part item: both parts right earn ppi, one earns half
// (floored), neither earns nothing.
func Pair(a, b bool, ppi int) int {
	switch {
	case a && b:
		return ppi
	case a || b:
		return ppi / 2
	default:
		return 0
	}
}

// WrongMatchPenalty is subtracted for each incorrect pairing attempt.
const WrongMatchPenalty = 3

// MatchTally accumulates the fractional score of one matching exercise. It
// is rounded once, when the exercise completes.
type MatchTally struct {
	total   int
	matched int
	points  float64
}

// NewMatchTally creates a tally for an exercise with total declared pairs.
func NewMatchTally(total int) *MatchTally {
	return &MatchTally{total: total}
}

// Correct adds 100/total for a correct pairing.
func (m *MatchTally) Correct() {
	if m.total <= 0 || m.matched >= m.total {
		return
	}
	m.matched++
	m.points += float64(BlockTotal) / float64(m.total)
}

// Wrong subtracts the penalty, never going below zero.
func (m *MatchTally) Wrong() {
	m.points = math.Max(0, m.points-WrongMatchPenalty)
}

// Done reports whether every declared pair has been matched.
func (m *MatchTally) Done() bool {
	return m.matched >= m.total
}

// Matched returns the number of pairs matched so far.
func (m *MatchTally) Matched() int {
	return m.matched
}

// Points returns the unrounded running score.
func (m *MatchTally) Points() float64 {
	return m.points
}

// Round returns the tally rounded to whole points.
func (m *MatchTally) Round() int {
	return int(math.Round(m.points))
}

func toSet[T comparable](items []T) map[T]bool {
	s := make(map[T]bool, len(items))
	for _, it := range items {
		s[it] = true
	}
	return s
}
