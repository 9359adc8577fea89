package logviewer

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings the logs panel handles itself. List navigation
// lives in the list's own key map.
type KeyMap struct {
	Copy key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy line"),
		),
	}
}
