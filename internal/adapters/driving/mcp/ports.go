package mcp

import (
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator owns calculator sessions.
	Calculator driving.CalculatorService

	// History exposes completed calculations. Optional.
	History driving.HistoryService

	// Settings supplies the rate limit. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	return nil
}
