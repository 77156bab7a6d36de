// Package domain defines the core business entities for Abacus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Engine: The calculator state machine
//   - InputEvent: A single key press (digit, point, operator, equals, clear)
//   - EngineState: The running state owned by an Engine
//   - HistoryEntry: A completed calculation on the history tape
//   - AppSettings: User preferences
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
