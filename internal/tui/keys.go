package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Modes    key.Binding
	Know     key.Binding
	Hint     key.Binding
	Verify   key.Binding
	DontKnow key.Binding
	Confirm  key.Binding
	Add      key.Binding
	Reload   key.Binding
	Cancel   key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Modes:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "mode")),
		Know:     key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "know")),
		Hint:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		Verify:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "verify")),
		DontKnow: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "don't know")),
		Confirm:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add word")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Know, k.Hint, k.Verify, k.DontKnow, k.Modes, k.Add, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Know, k.Hint, k.Verify, k.DontKnow, k.Confirm},
		{k.Modes, k.Add, k.Reload, k.Cancel, k.Quit},
	}
}
