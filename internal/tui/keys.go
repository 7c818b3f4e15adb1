// internal/tui/keys.go
//
// Key bindings for the terminal game. Hint lives on "h", so board movement
// is arrows-only; "?" opens the full help overlay.

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Digit key.Binding
	Clear key.Binding
	Undo  key.Binding
	Hint  key.Binding
	Check key.Binding
	Pause key.Binding
	New   key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("arrows", "move")),
		Down:  key.NewBinding(key.WithKeys("down")),
		Left:  key.NewBinding(key.WithKeys("left")),
		Right: key.NewBinding(key.WithKeys("right")),
		Digit: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "place digit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("0", "backspace", "delete"),
			key.WithHelp("0/del", "clear cell"),
		),
		Undo:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Hint:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		Check: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check")),
		Pause: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		New:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is the one-line bar under the board.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Clear, k.Undo, k.Hint, k.Help, k.Quit}
}

// FullHelp backs the "?" overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Digit, k.Clear},
		{k.Undo, k.Hint, k.Check},
		{k.Pause, k.New, k.Quit},
	}
}
