// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCalculator is the keypad and display.
	ViewCalculator
	// ViewHistory lists completed calculations.
	ViewHistory
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCalculator:
		return "calculator"
	case ViewHistory:
		return "history"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SessionStarted carries the ID of a new calculator session.
type SessionStarted struct {
	SessionID string
	Err       error
}

// KeyApplied carries the calculator state after a key press.
type KeyApplied struct {
	Input    domain.InputEvent
	Snapshot domain.Snapshot
	Err      error
}

// HistoryLoaded carries the history tape, newest first.
type HistoryLoaded struct {
	Entries []domain.HistoryEntry
	Err     error
}

// HistoryCleared signals the history tape was emptied.
type HistoryCleared struct {
	Err error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}

// ConfigChanged signals the config file was edited outside the TUI.
type ConfigChanged struct{}
