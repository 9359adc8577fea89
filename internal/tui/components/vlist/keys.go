package vlist

import (
	"charm.land/bubbles/v2/key"
)

type KeyMap struct {
	Down         key.Binding
	Up           key.Binding
	DownOneItem  key.Binding
	UpOneItem    key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	Home         key.Binding
	End          key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		DownOneItem: key.NewBinding(
			key.WithKeys("j", "shift+down"),
			key.WithHelp("j", "next item"),
		),
		UpOneItem: key.NewBinding(
			key.WithKeys("k", "shift+up"),
			key.WithHelp("k", "previous item"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "go to bottom"),
		),
	}
}

// Bindings lists the bindings in help order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{
		k.Up, k.Down,
		k.UpOneItem, k.DownOneItem,
		k.HalfPageUp, k.HalfPageDown,
		k.PageUp, k.PageDown,
		k.Home, k.End,
	}
}
