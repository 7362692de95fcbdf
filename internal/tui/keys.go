package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Quit    key.Binding
	Theme   key.Binding
	Refresh key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Submit  key.Binding
	Left    key.Binding
	Right   key.Binding
	Yes     key.Binding
	No      key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete mode")),
	Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Left:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "choose")),
	Right:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
	Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
	No:      key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
}
