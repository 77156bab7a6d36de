// Package calculator provides the keypad view for the TUI.
package calculator

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
)

// keypad is the button layout, top to bottom.
var keypad = [][]string{
	{"C", "÷", "×", "-"},
	{"7", "8", "9", "+"},
	{"4", "5", "6", "="},
	{"1", "2", "3", "."},
	{"0"},
}

// View is the calculator keypad and display.
type View struct {
	ctx        context.Context
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	help       help.Model
	statusBar  *status.Bar
	calculator driving.CalculatorService

	sessionID string
	snapshot  domain.Snapshot
	lastKey   string
	err       error

	width  int
	height int
	ready  bool
}

// NewView creates a new calculator view.
func NewView(s *styles.Styles, calculator driving.CalculatorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	return &View{
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		help:       help.New(),
		statusBar:  status.NewBar(s, km),
		calculator: calculator,
		snapshot:   domain.Snapshot{Display: domain.InitialDisplay},
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts a calculator session if none is active.
func (v *View) Init() tea.Cmd {
	if v.sessionID != "" {
		return nil
	}
	return v.startSession()
}

func (v *View) startSession() tea.Cmd {
	return func() tea.Msg {
		if v.calculator == nil {
			return messages.SessionStarted{Err: ErrNoCalculatorService}
		}
		id, err := v.calculator.NewSession(v.ctx)
		return messages.SessionStarted{SessionID: id, Err: err}
	}
}

// press applies ev before returning so key presses reach the engine in
// the order Update receives them.
func (v *View) press(ev domain.InputEvent) messages.KeyApplied {
	if v.calculator == nil {
		return messages.KeyApplied{Input: ev, Err: ErrNoCalculatorService}
	}
	if v.sessionID == "" {
		return messages.KeyApplied{Input: ev, Err: ErrNoSession}
	}
	snap, err := v.calculator.Press(v.ctx, v.sessionID, ev)
	return messages.KeyApplied{Input: ev, Snapshot: snap, Err: err}
}

func (v *View) applyResult(msg messages.KeyApplied) {
	v.err = msg.Err
	if msg.Err != nil {
		v.statusBar.SetState(status.StateError)
		v.statusBar.SetMessage(msg.Err.Error())
		return
	}
	v.snapshot = msg.Snapshot
	v.lastKey = msg.Input.Label()
	v.statusBar.SetSnapshot(msg.Snapshot)
}

// Update handles messages for the calculator view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SessionStarted:
		v.err = msg.Err
		if msg.Err == nil {
			v.sessionID = msg.SessionID
			v.snapshot = domain.Snapshot{Display: domain.InitialDisplay}
			v.statusBar.Clear()
		}
		return v, nil

	case messages.KeyApplied:
		v.applyResult(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	// Back wins over the esc alias for Clear.
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(keyStr, v.keymap.Help):
		v.help.ShowAll = !v.help.ShowAll
		return v, nil
	case keyStr == "q":
		return v, tea.Quit
	}

	ev, err := domain.ParseKey(keyStr)
	if err != nil {
		return v, nil
	}
	v.applyResult(v.press(ev))
	return v, nil
}

// View renders the calculator.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Calculator"))
	b.WriteString("\n\n")

	expression := v.snapshot.Expression
	if expression == "" {
		expression = " "
	}
	b.WriteString(v.styles.Muted.Render(expression))
	b.WriteString("\n")

	if v.snapshot.IsError {
		b.WriteString(v.styles.DisplayError.Render(v.snapshot.Display))
	} else {
		b.WriteString(v.styles.Display.Render(v.snapshot.Display))
	}
	b.WriteString("\n")

	b.WriteString(v.renderKeypad())
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}

	v.statusBar.SetWidth(v.width)
	b.WriteString(v.statusBar.View())

	if v.help.ShowAll {
		b.WriteString("\n\n")
		b.WriteString(v.help.FullHelpView(v.keymap.FullHelp()))
	}

	return b.String()
}

func (v *View) renderKeypad() string {
	rows := make([]string, 0, len(keypad))
	for _, row := range keypad {
		buttons := make([]string, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, v.renderKey(label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (v *View) renderKey(label string) string {
	switch {
	case label == v.lastKey:
		return v.styles.KeyActive.Render(label)
	case strings.ContainsAny(label, "+-×÷="):
		return v.styles.KeyOperator.Render(label)
	default:
		return v.styles.Key.Render(label)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
	v.ready = true
}

// SessionID returns the active session, empty before Init completes.
func (v *View) SessionID() string {
	return v.sessionID
}

// Snapshot returns the last rendered calculator state.
func (v *View) Snapshot() domain.Snapshot {
	return v.snapshot
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}

// Close discards the calculator session.
func (v *View) Close() error {
	if v.calculator == nil || v.sessionID == "" {
		return nil
	}
	err := v.calculator.CloseSession(v.ctx, v.sessionID)
	v.sessionID = ""
	return err
}
