package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alexchase32/lessbuilder/internal/exercise"
	"github.com/alexchase32/lessbuilder/internal/ui/theme"
)

// OptionList renders the options of an exercise view with a cursor.
type OptionList struct {
	Options []exercise.Option
	Cursor  int
	// Focused is false for the inactive column of a matching exercise.
	Focused bool
	// Inline renders the options on one line, used for sentence letters.
	Inline bool
}

// View renders the list.
func (l OptionList) View() string {
	if l.Inline {
		return l.inline()
	}
	var b strings.Builder
	for i, opt := range l.Options {
		prefix := "  "
		if l.Focused && i == l.Cursor {
			prefix = "▸ "
		}
		check := ""
		if opt.Selected {
			check = "● "
		}
		line := fmt.Sprintf("%s%d) %s%s", prefix, i+1, check, opt.Label)
		b.WriteString(optionStyle(opt, l.Focused && i == l.Cursor).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (l OptionList) inline() string {
	var b strings.Builder
	for i, opt := range l.Options {
		st := optionStyle(opt, l.Focused && i == l.Cursor)
		if opt.Selected && opt.Mark == exercise.MarkNone {
			st = st.Underline(true)
		}
		if l.Focused && i == l.Cursor {
			st = st.Reverse(true)
		}
		b.WriteString(st.Render(opt.Label))
	}
	return b.String()
}

func optionStyle(opt exercise.Option, cursor bool) lipgloss.Style {
	switch opt.Mark {
	case exercise.MarkCorrect:
		return theme.Correct
	case exercise.MarkWrong:
		return theme.Incorrect
	case exercise.MarkMatched:
		return theme.Pair
	}
	switch {
	case cursor:
		return theme.Selected
	case opt.Selected:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	case opt.Disabled:
		return theme.Disabled
	}
	return theme.Unselected
}

// Next moves from cursor by step, skipping disabled options. It returns
// cursor unchanged when no enabled option lies in that direction.
func Next(opts []exercise.Option, cursor, step int) int {
	for i := cursor + step; i >= 0 && i < len(opts); i += step {
		if !opts[i].Disabled {
			return i
		}
	}
	return cursor
}
