package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/yichen/tinyhabits/internal/progress"
	"github.com/yichen/tinyhabits/internal/ui/layout"
)

// StatsChangedMsg is broadcast whenever statistics change (completion
// recorded, goal updated, history reset) so the header and the home
// screen stay current.
type StatsChangedMsg struct {
	Stats progress.UserStatistics
}

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

// EscHandler is an optional interface for screens that need to intercept
// Esc instead of being popped, e.g. to show a confirmation first.
type EscHandler interface {
	HandlesEsc() bool
}
