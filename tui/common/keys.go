package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the comment thread.
type KeyMap struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	Up            key.Binding
	Down          key.Binding
	Top           key.Binding
	Bottom        key.Binding
	Toggle        key.Binding // enter/space, collapse or expand replies
	Like          key.Binding
	Reply         key.Binding // r, inline reply under the selected comment
	Comment       key.Binding // c, inline top-level comment
	CommentEditor key.Binding // C, top-level comment via $EDITOR
	Delete        key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
	Order         key.Binding
	LoadMore      key.Binding
	LoadReplies   key.Binding
	Refresh       key.Binding
	ToggleHints   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "collapse/expand"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Reply: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reply"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		CommentEditor: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "comment ($EDITOR)"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Order: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more comments"),
		),
		LoadReplies: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "load replies"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		ToggleHints: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "all keys"),
		),
	}
}
