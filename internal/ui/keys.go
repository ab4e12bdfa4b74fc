package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Edit       key.Binding
	EditForm   key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Search     key.Binding
	Status     key.Binding
	Sort       key.Binding
	Reverse    key.Binding
	Columns    key.Binding
	Appts      key.Binding
	Reload     key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	ToggleMark key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Edit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		EditForm:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit record")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space", "toggle status")),
		Delete:     key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		Sort:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort key")),
		Reverse:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "sort direction")),
		Columns:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
		Appts:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "appointments")),
		Reload:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:    key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Cancel:     key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc", "cancel")),
		ToggleMark: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	}
}
