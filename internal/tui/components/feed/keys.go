package feed

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings the feed panel handles itself. List navigation
// lives in the list's own key map.
type KeyMap struct {
	Copy         key.Binding
	CommitFilter key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy entry"),
		),
		CommitFilter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply filter"),
		),
	}
}
