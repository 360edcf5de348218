package home

import (
	"charm.land/lipgloss/v2"

	"github.com/alexchase32/lessbuilder/internal/ui/theme"
)

const bannerArt = `
██╗  ██╗ ██████╗ ██╗      █████╗ 
██║  ██║██╔═══██╗██║     ██╔══██╗
███████║██║   ██║██║     ███████║
██╔══██║██║   ██║██║     ██╔══██║
██║  ██║╚██████╔╝███████╗██║  ██║
╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝  ╚═╝`

const bannerCompact = "¡ H O L A !"

// renderBanner draws the greeting banner, compact when the terminal cannot
// fit the art above the lesson card and menu.
func renderBanner(width, height int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 || height < 36 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
