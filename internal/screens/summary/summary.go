package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/alexchase32/lessbuilder/internal/lesson"
	"github.com/alexchase32/lessbuilder/internal/router"
	"github.com/alexchase32/lessbuilder/internal/screen"
	"github.com/alexchase32/lessbuilder/internal/ui/layout"
	"github.com/alexchase32/lessbuilder/internal/ui/theme"
)

// BlockLine is the outcome of one block.
type BlockLine struct {
	Type    lesson.BlockType
	Score   int
	Expired bool
	Skipped bool
}

// Result is what the summary shows.
type Result struct {
	Lesson string
	Date   string
	Total  int
	// Blocks is the number of blocks in the lesson.
	Blocks  int
	Results []BlockLine
	// Quit is set when the student ended the lesson early.
	Quit bool
	// NoLesson is set when there was nothing to play.
	NoLesson bool
}

// SummaryScreen displays the final score of a lesson.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.HeaderProvider = (*SummaryScreen)(nil)
var _ screen.EscapeHandler = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(r Result) *SummaryScreen {
	return &SummaryScreen{result: r}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Header() layout.HeaderInfo {
	return layout.HeaderInfo{
		Lesson:    s.result.Lesson,
		Date:      s.result.Date,
		Total:     s.result.Total,
		ShowTotal: !s.result.NoLesson,
	}
}

func (s *SummaryScreen) HandlesEscape() bool { return true }

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// Headline returns the main message of the summary.
func (s *SummaryScreen) Headline() string {
	switch {
	case s.result.NoLesson:
		return "No lesson available"
	case s.result.Quit:
		return "Lesson ended early"
	}
	return "Lesson completed!"
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title, width, s.Headline()))
	b.WriteString("\n\n")

	if r.NoLesson {
		b.WriteString(layout.Centered(theme.Hint, width,
			"Import one with: lessbuilder lesson import <file>"))
		return b.String()
	}

	b.WriteString(layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true), width,
		fmt.Sprintf("Final score: %d", r.Total)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Subtitle, width,
		fmt.Sprintf("%d of %d blocks played", len(r.Results), r.Blocks)))
	b.WriteString("\n\n")

	if len(r.Results) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 50), 0)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Blocks")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")

	for i, line := range r.Results {
		note := ""
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case line.Skipped:
			note = "  skipped"
			style = theme.Disabled
		case line.Expired:
			note = "  time's up"
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		case line.Score >= 100:
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		text := fmt.Sprintf("%2d. %-24s %4d%s", i+1, line.Type.Label(), line.Score, note)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(text)))
		b.WriteString("\n")
	}
	return b.String()
}
