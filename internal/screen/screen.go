package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/appstate"
	"github.com/abhisek/kotoba/internal/ui/layout"
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

// Routed is implemented by screens that correspond to a store view. The
// app dispatches appstate.SetView whenever such a screen becomes active.
type Routed interface {
	Route() appstate.View
}

// StateMsg carries a store snapshot after every dispatched action. The
// router delivers it to every screen on the stack.
type StateMsg struct {
	State appstate.State
}

// EscapeHandler is implemented by screens that act on Esc themselves. The
// app pops the active screen on Esc unless it reports true.
type EscapeHandler interface {
	HandlesEscape() bool
}
