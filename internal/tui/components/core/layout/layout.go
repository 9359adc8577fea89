package layout

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Sizeable is implemented by components that are laid out by their parent.
type Sizeable interface {
	SetSize(width, height int) tea.Cmd
	GetSize() (width, height int)
}

// Focusable is implemented by components that react to keyboard focus.
type Focusable interface {
	Focus() tea.Cmd
	Blur() tea.Cmd
	IsFocused() bool
}

// Help is implemented by components that contribute key bindings to the
// status bar help.
type Help interface {
	Bindings() []key.Binding
}
