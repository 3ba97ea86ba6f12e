package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Move    key.Binding
	Quest   key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Move:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "daily move")),
		Quest:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "daily quest")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Quest, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Quest},
		{k.Refresh, k.Help, k.Quit},
	}
}
