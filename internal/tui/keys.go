package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	Quick1  key.Binding
	Quick2  key.Binding
	Quick3  key.Binding
	Custom  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

func newKeyMap(quick []int) keyMap {
	label := func(i int) string {
		if i < len(quick) {
			return quickLabel(quick[i])
		}
		return ""
	}
	return keyMap{
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quick1:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", label(0))),
		Quick2:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", label(1))),
		Quick3:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", label(2))),
		Custom:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom length")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Quick1, k.Quick2, k.Quick3, k.Custom, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// editingKeys is shown while the custom length input is open.
type editingKeys struct{ keyMap }

func (k editingKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

func (k editingKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
