package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Enter   key.Binding
	Toggle  key.Binding
	Tab     key.Binding
	Save    key.Binding
	New     key.Binding
	Refresh key.Binding
	Explain key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "previous")),
	Right:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "next")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Save:    key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new address book")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh groups")),
	Explain: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "explain direction")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
