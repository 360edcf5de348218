package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/alexchase32/lessbuilder/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64
	// Suffix is printed after the bar, e.g. "3/5" or "0:42".
	Suffix string
	Width  int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, suffix string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: percent,
		Suffix:  suffix,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	suffix := ""
	if p.Suffix != "" {
		suffix = "  " + p.Suffix
	}

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(suffix), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	if suffix != "" {
		result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
	}
	return result
}

// Clock formats seconds as m:ss.
func Clock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
