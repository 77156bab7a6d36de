// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionTheme
	SectionHistoryLimit
	SectionHistoryBackend
)

// Overview rows.
const (
	rowTheme = iota
	rowHistoryEnabled
	rowHistoryLimit
	rowHistoryBackend
	overviewRows
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

var errNoSettingsService = errors.New("settings service not available")

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error

	// Navigation state
	section  Section
	selected int // selection within current section

	limitInput textinput.Model

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	limitInput := textinput.New()
	limitInput.Placeholder = strconv.Itoa(domain.DefaultHistoryLimit)
	limitInput.CharLimit = 6
	limitInput.Validate = func(s string) error {
		if s == "" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		limitInput:      limitInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: errNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.section = SectionOverview
		v.selected = 0
		v.limitInput.SetValue("")
		v.limitInput.Blur()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.section = SectionOverview
		v.selected = 0
		v.limitInput.Blur()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionTheme:
		return v.handleThemeKeys(msg)
	case SectionHistoryLimit:
		return v.handleLimitKeys(msg)
	case SectionHistoryBackend:
		return v.handleBackendKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < overviewRows-1 {
			v.selected++
		}
	case keyEnter, " ":
		if v.settings == nil {
			return v, nil
		}
		switch v.selected {
		case rowTheme:
			v.section = SectionTheme
			v.selected = indexOf(domain.AllThemes(), v.settings.Display.Theme)
		case rowHistoryEnabled:
			return v, v.setHistoryEnabled(!v.settings.History.Enabled)
		case rowHistoryLimit:
			v.section = SectionHistoryLimit
			v.limitInput.SetValue(strconv.Itoa(v.settings.History.Limit))
			return v, v.limitInput.Focus()
		case rowHistoryBackend:
			v.section = SectionHistoryBackend
			v.selected = indexOf(domain.AllHistoryBackends(), v.settings.History.Backend)
		}
	}
	return v, nil
}

func (v *View) handleThemeKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	themes := domain.AllThemes()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(themes)-1 {
			v.selected++
		}
	case keyEnter:
		return v, v.setTheme(themes[v.selected])
	}
	return v, nil
}

func (v *View) handleBackendKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	backends := domain.AllHistoryBackends()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(backends)-1 {
			v.selected++
		}
	case keyEnter:
		return v, v.setHistoryBackend(backends[v.selected])
	}
	return v, nil
}

func (v *View) handleLimitKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		limit, err := strconv.Atoi(strings.TrimSpace(v.limitInput.Value()))
		if err != nil {
			v.err = fmt.Errorf("history limit must be a number: %w", err)
			return v, nil
		}
		return v, v.setHistoryLimit(limit)
	}

	var cmd tea.Cmd
	v.limitInput, cmd = v.limitInput.Update(msg)
	return v, cmd
}

// Commands to update settings.

func (v *View) save(apply func(driving.SettingsService) error) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: errNoSettingsService}
		}
		return messages.SettingsSaved{Err: apply(v.settingsService)}
	}
}

func (v *View) setTheme(theme domain.Theme) tea.Cmd {
	return v.save(func(s driving.SettingsService) error { return s.SetTheme(theme) })
}

func (v *View) setHistoryEnabled(enabled bool) tea.Cmd {
	return v.save(func(s driving.SettingsService) error { return s.SetHistoryEnabled(enabled) })
}

func (v *View) setHistoryLimit(limit int) tea.Cmd {
	return v.save(func(s driving.SettingsService) error { return s.SetHistoryLimit(limit) })
}

func (v *View) setHistoryBackend(backend domain.HistoryBackend) tea.Cmd {
	return v.save(func(s driving.SettingsService) error { return s.SetHistoryBackend(backend) })
}

func indexOf[T comparable](items []T, want T) int {
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionTheme:
		b.WriteString(v.renderChoices("Select Theme", themeLabels(), v.settings.Display.Theme.Description()))
	case SectionHistoryLimit:
		b.WriteString(v.renderLimitInput())
	case SectionHistoryBackend:
		b.WriteString(v.renderChoices("Select History Backend", backendLabels(), v.settings.History.Backend.Description()))
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	enabled := "Off"
	if v.settings.History.Enabled {
		enabled = "On"
	}

	items := []struct {
		label string
		value string
	}{
		{label: "Theme", value: v.settings.Display.Theme.Description()},
		{label: "History", value: enabled},
		{label: "History Limit", value: strconv.Itoa(v.settings.History.Limit)},
		{label: "History Backend", value: v.settings.History.Backend.Description()},
	}

	for i, item := range items {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%s: %s", indicator, item.label, item.value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Warning.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Success.Render("Configuration is valid"))
		}
	}

	return b.String()
}

func (v *View) renderChoices(title string, labels []string, current string) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n\n")

	for i, label := range labels {
		indicator := "  "
		if i == v.selected {
			indicator = "> "
		}

		suffix := ""
		if label == current {
			suffix = v.styles.Success.Render(" (current)")
		}

		line := indicator + label + suffix
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderLimitInput() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("History Limit"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("Maximum number of calculations kept."))
	b.WriteString("\n")
	b.WriteString(v.limitInput.View())
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit/toggle  [esc] back")
	case SectionHistoryLimit:
		return v.styles.Help.Render("[enter] save  [esc] cancel")
	default:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	}
}

func themeLabels() []string {
	themes := domain.AllThemes()
	labels := make([]string, len(themes))
	for i, t := range themes {
		labels[i] = t.Description()
	}
	return labels
}

func backendLabels() []string {
	backends := domain.AllHistoryBackends()
	labels := make([]string, len(backends))
	for i, b := range backends {
		labels[i] = b.Description()
	}
	return labels
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Settings returns the loaded settings, nil until loaded.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Reset resets the view to initial state.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.err = nil
	v.limitInput.SetValue("")
	v.limitInput.Blur()
}
