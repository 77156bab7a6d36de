package calculator

import "errors"

// Error definitions for the calculator view.
var (
	// ErrNoCalculatorService indicates that no calculator service was provided.
	ErrNoCalculatorService = errors.New("calculator service is required")

	// ErrNoSession indicates a key was pressed before a session started.
	ErrNoSession = errors.New("calculator session not started")
)
