package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alexchase32/lessbuilder/internal/exercise"
	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/ui/components"
	"github.com/alexchase32/lessbuilder/internal/ui/layout"
	"github.com/alexchase32/lessbuilder/internal/ui/theme"
)

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End lesson"},
			{Key: "N", Description: "Keep going"},
		}
	}
	v, ok := s.view()
	if !ok {
		return nil
	}
	mod := ""
	if v.Input {
		mod = "^"
	}

	var hints []layout.KeyHint
	switch {
	case v.Phase == exercise.PhaseEvaluated:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Continue"})
	case v.Mode == exercise.SelectOne:
		hints = append(hints, layout.KeyHint{Key: "1-9", Description: "Choose"})
	case v.Mode == exercise.SelectMany:
		hints = append(hints,
			layout.KeyHint{Key: "Space", Description: "Toggle"},
			layout.KeyHint{Key: "Enter", Description: "Check"})
	case v.Mode == exercise.SelectPairs:
		hints = append(hints,
			layout.KeyHint{Key: "Tab", Description: "Column"},
			layout.KeyHint{Key: "Enter", Description: "Pick"})
	case v.Input:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	if v.Revealable {
		hints = append(hints, layout.KeyHint{Key: mod + "F", Description: "Flip"})
	}
	for _, a := range v.Actions {
		if !a.Enabled {
			continue
		}
		if a.Kind == exercise.Recognize {
			hints = append(hints, layout.KeyHint{Key: mod + "S", Description: "Speak"})
		} else {
			hints = append(hints, layout.KeyHint{Key: mod + "L", Description: "Listen"})
		}
		break
	}
	if v.Phase != exercise.PhaseEvaluated {
		skip := "N"
		if v.Input {
			skip = "^K"
		}
		hints = append(hints, layout.KeyHint{Key: skip, Description: "Skip"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *Screen) View(width, height int) string {
	if s.quitConfirm {
		return renderQuitConfirm(width, height)
	}
	v, ok := s.view()
	if !ok {
		return layout.Centered(theme.Hint, width, "\n\nLoading lesson...")
	}

	cw := min(width-4, 76)
	var b strings.Builder

	// Block and item progress.
	info := fmt.Sprintf("  Block %d of %d", s.runner.Index()+1, s.runner.BlockCount())
	right := fmt.Sprintf("Item %d/%d  Score %d", min(v.Index+1, v.Total), v.Total, v.Score)
	if secs, ok := s.runner.Remaining(); ok {
		right += "  ⏱ " + components.Clock(secs)
	}
	infoLeft := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info)
	infoRight := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)
	b.WriteString(infoLeft)
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad) + infoRight)
	}
	b.WriteString("\n")
	progress := 0.0
	if v.Total > 0 {
		progress = float64(v.Attempted) / float64(v.Total)
	}
	bar := components.NewProgressBar("", progress, fmt.Sprintf("%d/%d", v.Attempted, v.Total), cw)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if v.Instructions != "" {
		b.WriteString(layout.Centered(theme.Hint, width, v.Instructions))
		b.WriteString("\n\n")
	}

	if v.Prompt != "" && v.Type != lesson.TypeAccent {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, v.Prompt))
		b.WriteString("\n")
	}
	for _, d := range v.Details {
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Accent), width, d))
		b.WriteString("\n")
	}
	if v.Revealable && !v.Revealed && len(v.Details) == 0 && v.Type == lesson.TypeFlashcard {
		b.WriteString(layout.Centered(theme.Hint, width, "(flip to see the Spanish)"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if body := s.renderBody(v, cw); body != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, body))
		b.WriteString("\n")
	}

	if v.Input {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Card.Width(cw).Render(s.input.View())))
		b.WriteString("\n")
	}

	b.WriteString(renderFeedback(v, width))
	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Hint, width, s.notice))
	}
	return b.String()
}

// renderBody renders options, matching columns or speech steps.
func (s *Screen) renderBody(v exercise.View, cw int) string {
	focused := v.Phase != exercise.PhaseEvaluated
	switch v.Mode {
	case exercise.SelectOne, exercise.SelectMany:
		list := components.OptionList{
			Options: v.Options,
			Cursor:  s.cursor,
			Focused: focused,
			Inline:  v.Type == lesson.TypeAccent,
		}
		if list.Inline {
			return theme.Card.Render(list.View())
		}
		return list.View()

	case exercise.SelectPairs:
		colWidth := max(cw/2-2, 10)
		blue := components.OptionList{Options: v.Options, Cursor: s.cursor, Focused: focused && s.column == 0}
		white := components.OptionList{Options: v.Pairs, Cursor: s.pairCursor, Focused: focused && s.column == 1}
		left := lipgloss.NewStyle().Width(colWidth).Render(
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Blue") + "\n" + blue.View())
		right := lipgloss.NewStyle().Width(colWidth).Render(
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("White") + "\n" + white.View())
		return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
	}

	if len(v.Actions) == 0 {
		return ""
	}
	var b strings.Builder
	for i, a := range v.Actions {
		glyph := "  "
		st := theme.Disabled
		switch {
		case a.Busy:
			glyph, st = "… ", theme.Warning
		case a.Done && a.Mark == exercise.MarkWrong:
			glyph, st = "✗ ", theme.Incorrect
		case a.Done:
			glyph, st = "✓ ", theme.Correct
		case a.Enabled:
			glyph, st = "▸ ", theme.Selected
		}
		icon := "🎤"
		if a.Kind == exercise.Synthesize {
			icon = "🔊"
		}
		b.WriteString(st.Render(fmt.Sprintf("%s%d) %s %s", glyph, i+1, icon, a.Label)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderFeedback(v exercise.View, width int) string {
	var b strings.Builder
	if v.Feedback != "" {
		st := lipgloss.NewStyle().Foreground(theme.Text)
		if v.Correct != nil {
			st = theme.Incorrect
			if *v.Correct {
				st = theme.Correct
			}
		}
		b.WriteString("\n")
		b.WriteString(layout.Centered(st, width, v.Feedback))
	}
	if v.Warning != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Warning, width, v.Warning))
	}
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	box := theme.Dialog.Render(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("End this lesson?") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your score so far will be kept.") + "\n\n" +
			theme.Hint.Render("Y to end, N to keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
