package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/views/calculator"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles is shared by every view and restyled in place on theme change.
	styles *styles.Styles

	// theme is the palette currently applied.
	theme domain.Theme

	menuView       *menu.View
	calculatorView *calculator.View
	historyView    *history.View
	settingsView   *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	theme := domain.ThemeDark
	if ports.Settings != nil {
		if current, err := ports.Settings.Get(); err == nil {
			theme = current.Display.Theme
		} else {
			logger.Warn("tui: loading settings: %v", err)
		}
	}

	s := styles.NewStyles(styles.ThemeFor(theme))

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		theme:          theme,
		menuView:       menu.NewView(s),
		calculatorView: calculator.NewView(s, ports.Calculator),
		historyView:    history.NewView(s, ports.History),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.calculatorView.WithContext(ctx)
	a.historyView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("abacus"),
		a.calculatorView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewCalculator:
			a.calculatorView, cmd = a.calculatorView.Update(msg)
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewCalculator:
			return a, a.calculatorView.Init()
		case messages.ViewHistory:
			return a, a.historyView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.SessionStarted, messages.KeyApplied:
		a.calculatorView, cmd = a.calculatorView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded, messages.HistoryCleared:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			a.applyTheme(msg.Settings.Display.Theme)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ConfigChanged:
		logger.Debug("tui: config changed, reloading settings")
		return a, a.reloadSettings()

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewCalculator {
			a.calculatorView, cmd = a.calculatorView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blinks, viewport scrolling) to the active view.
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCalculator:
		a.calculatorView, cmd = a.calculatorView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

func (a *App) reloadSettings() tea.Cmd {
	if a.ports.Settings == nil {
		return nil
	}
	return func() tea.Msg {
		current, err := a.ports.Settings.Get()
		return messages.SettingsLoaded{Settings: current, Err: err}
	}
}

func (a *App) applyTheme(theme domain.Theme) {
	if theme == a.theme {
		return
	}
	logger.Debug("tui: applying theme %s", theme)
	a.styles.SetTheme(styles.ThemeFor(theme))
	a.theme = theme
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewCalculator:
		return a.calculatorView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Calculator:
  0-9         Digits
  . or ,      Decimal point
  + - * x /   Operators
  = or enter  Equals
  c, delete   Clear
  ?           Toggle keybindings

History:
  j/k, ↑/↓    Scroll
  r           Reload
  D           Delete all entries

[esc] back to menu`
}

// NewProgram wraps the app in a full-screen bubbletea program.
func (a *App) NewProgram() *tea.Program {
	return tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
}

// Run starts the TUI application and closes the calculator session on exit.
func (a *App) Run() error {
	_, err := a.NewProgram().Run()
	if closeErr := a.Close(); closeErr != nil {
		logger.Warn("tui: closing session: %v", closeErr)
	}
	return err
}

// Close releases the calculator session.
func (a *App) Close() error {
	return a.calculatorView.Close()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Theme returns the theme currently applied.
func (a *App) Theme() domain.Theme {
	return a.theme
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.calculatorView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
