// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Digit enters 0-9 on the keypad.
	Digit key.Binding

	// Point enters the decimal point.
	Point key.Binding

	// Operator chooses + - × ÷.
	Operator key.Binding

	// Equals completes the pending operation.
	Equals key.Binding

	// Clear resets the calculator.
	Clear key.Binding

	// ClearHistory deletes the history tape.
	ClearHistory key.Binding

	// Reload re-reads data from the services.
	Reload key.Binding
}

// Ensure KeyMap can drive a bubbles help footer.
var _ help.KeyMap = (*KeyMap)(nil)

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "digit"),
		),
		Point: key.NewBinding(
			key.WithKeys(".", ","),
			key.WithHelp(".", "point"),
		),
		Operator: key.NewBinding(
			key.WithKeys("+", "-", "*", "x", "/"),
			key.WithHelp("+ - * /", "operator"),
		),
		Equals: key.NewBinding(
			key.WithKeys("=", "enter"),
			key.WithHelp("=/enter", "equals"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c", "C", "delete"),
			key.WithHelp("c", "clear"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete all"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// CalculatorHelp returns keybindings for the calculator view.
func (k *KeyMap) CalculatorHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Operator, k.Equals, k.Clear, k.Back}
}

// HistoryHelp returns keybindings for the history view.
func (k *KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reload, k.ClearHistory, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Digit, k.Point, k.Operator, k.Equals, k.Clear},
		{k.Up, k.Down, k.Select, k.Back},
		{k.Reload, k.ClearHistory, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
