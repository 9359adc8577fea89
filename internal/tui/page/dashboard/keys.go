package dashboard

import "charm.land/bubbles/v2/key"

// KeyMap holds the page-level bindings. Panel bindings are folded in for the
// status bar help.
type KeyMap struct {
	SwitchPanel   key.Binding
	ToggleCompact key.Binding

	panelBindings []key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch panel"),
		),
		ToggleCompact: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "compact"),
		),
	}
}

// globalBindings are handled by the root model but surfaced in the page help
// so they stay discoverable.
func globalBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "more"),
		),
		key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.SwitchPanel, k.ToggleCompact}
	n := min(3, len(k.panelBindings))
	bindings = append(bindings, k.panelBindings[:n]...)
	return append(bindings, globalBindings()...)
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	all := append([]key.Binding{k.SwitchPanel, k.ToggleCompact}, k.panelBindings...)
	all = append(all, globalBindings()...)
	all = append(all, key.NewBinding(
		key.WithKeys("ctrl+z"),
		key.WithHelp("ctrl+z", "suspend"),
	))
	m := [][]key.Binding{}
	for i := 0; i < len(all); i += 4 {
		end := min(i+4, len(all))
		m = append(m, all[i:end])
	}
	return m
}
