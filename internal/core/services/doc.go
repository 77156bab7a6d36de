// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// CalculatorService owns calculator sessions, HistoryService owns the
// history tape and SettingsService maps config keys to domain.AppSettings.
// Services are pure Go with no CGO.
package services
