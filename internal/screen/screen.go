package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lingodrill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is implemented by screens that show their own counters
// on the right side of the header instead of the corpus due count.
type StatusProvider interface {
	HeaderStatus() string
}

// Refresher is implemented by screens whose content goes stale while
// another screen is on top of them.
type Refresher interface {
	Refresh() tea.Cmd
}
