package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/alexchase32/lessbuilder/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// HeaderProvider is implemented by screens that show lesson details in the
// header.
type HeaderProvider interface {
	Header() layout.HeaderInfo
}

// EscapeHandler is implemented by screens that handle esc themselves
// instead of being popped.
type EscapeHandler interface {
	HandlesEscape() bool
}
