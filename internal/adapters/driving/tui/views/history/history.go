// Package history provides the history tape view for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
)

// ErrNoHistoryService indicates that no history service was provided.
var ErrNoHistoryService = errors.New("history service is required")

// chromeHeight is the number of lines around the viewport.
const chromeHeight = 6

// View shows completed calculations, newest first.
type View struct {
	ctx      context.Context
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	help     help.Model
	viewport viewport.Model
	history  driving.HistoryService

	entries []domain.HistoryEntry
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new history view.
func NewView(s *styles.Styles, history driving.HistoryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		ctx:      context.Background(),
		styles:   s,
		keymap:   keymap.DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 24-chromeHeight),
		history:  history,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the history tape.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadHistory()
}

func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.HistoryLoaded{Err: ErrNoHistoryService}
		}
		entries, err := v.history.List(v.ctx, 0)
		return messages.HistoryLoaded{Entries: entries, Err: err}
	}
}

func (v *View) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.HistoryCleared{Err: ErrNoHistoryService}
		}
		return messages.HistoryCleared{Err: v.history.Clear(v.ctx)}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.err = msg.Err
		v.entries = msg.Entries
		v.viewport.SetContent(v.renderEntries())
		v.viewport.GotoTop()
		return v, nil

	case messages.HistoryCleared:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.Init()

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Back):
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case keymap.Matches(keyStr, v.keymap.Reload):
			return v, v.Init()
		case keymap.Matches(keyStr, v.keymap.ClearHistory):
			return v, v.clearHistory()
		case keymap.Matches(keyStr, v.keymap.Quit):
			return v, tea.Quit
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) renderEntries() string {
	if len(v.entries) == 0 {
		return v.styles.Muted.Render("No calculations yet.")
	}

	var b strings.Builder
	for i, e := range v.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Muted.Render(e.CreatedAt.Format("15:04:05")))
		b.WriteString("  ")
		b.WriteString(v.styles.Normal.Render(e.Expression + " ="))
		b.WriteString(" ")
		b.WriteString(v.styles.Success.Render(e.Result))
	}
	return b.String()
}

// View renders the history tape.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	title := "History"
	if len(v.entries) > 0 {
		title = fmt.Sprintf("History (%d)", len(v.entries))
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case errors.Is(v.err, domain.ErrHistoryDisabled):
		b.WriteString(v.styles.Warning.Render("History is disabled. Enable it in Settings."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	default:
		b.WriteString(v.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.help.ShortHelpView(v.keymap.HistoryHelp()))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = max(height-chromeHeight, 1)
	v.help.Width = width
	v.ready = true
}

// Entries returns the loaded entries.
func (v *View) Entries() []domain.HistoryEntry {
	return v.entries
}

// Err returns the last error that occurred.
func (v *View) Err() error {
	return v.err
}
