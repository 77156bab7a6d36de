// Package driving defines what front ends may ask of the core.
//
// The CLI, the TUI and the MCP server only talk to these interfaces:
// CalculatorService for key presses, HistoryService for the tape and
// SettingsService for preferences. Implementations live in
// internal/core/services.
package driving
