package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownKey indicates a key token that maps to no calculator input.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnsupportedType indicates an unknown theme or storage backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// Calculation Errors.

	// ErrOperandParse indicates the current operand is not a valid number.
	ErrOperandParse = errors.New("operand is not a number")

	// ErrDivisionByZero indicates a division whose divisor is exactly zero.
	ErrDivisionByZero = errors.New("division by zero")

	// Session Errors.

	// ErrSessionClosed indicates the calculator session has been closed.
	ErrSessionClosed = errors.New("session closed")

	// ErrHistoryDisabled indicates the history tape is turned off in settings.
	ErrHistoryDisabled = errors.New("history disabled")
)
