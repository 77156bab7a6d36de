package driving

import (
	"context"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// CalculatorService owns calculator sessions and serialises input to them.
// Each session wraps one domain.Engine.
type CalculatorService interface {
	// NewSession creates a calculator showing "0" and returns its ID.
	NewSession(ctx context.Context) (string, error)

	// Press applies one input to a session and returns what to render.
	// Calculator failures (division by zero, bad operand) are reported in
	// the snapshot, never as an error.
	Press(ctx context.Context, sessionID string, input domain.InputEvent) (domain.Snapshot, error)

	// Display returns the current display text of a session.
	Display(ctx context.Context, sessionID string) (string, error)

	// State returns a copy of the full engine state of a session.
	State(ctx context.Context, sessionID string) (domain.EngineState, error)

	// Evaluate runs inputs on a fresh engine and returns the final snapshot.
	Evaluate(ctx context.Context, inputs []domain.InputEvent) (domain.Snapshot, error)

	// CloseSession discards a session.
	CloseSession(ctx context.Context, sessionID string) error
}
