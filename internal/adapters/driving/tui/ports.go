// Package tui provides an interactive terminal user interface for abacus.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator owns keypad sessions.
	Calculator driving.CalculatorService

	// History lists and clears completed calculations. Optional.
	History driving.HistoryService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	calculator driving.CalculatorService,
	history driving.HistoryService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Calculator: calculator,
		History:    history,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	return nil
}
