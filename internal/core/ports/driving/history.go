package driving

import (
	"context"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// HistoryService exposes the history tape to front ends.
type HistoryService interface {
	// Record stores a completed calculation. It is a no-op when history
	// is disabled.
	Record(ctx context.Context, sessionID string, calc domain.Calculation) error

	// List returns up to limit entries, newest first.
	// Returns domain.ErrHistoryDisabled when history is turned off.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Get retrieves an entry by ID.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// Clear deletes every entry.
	Clear(ctx context.Context) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
}
