package driven

import (
	"context"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// HistoryStore persists the history tape of completed calculations.
type HistoryStore interface {
	// Add appends an entry to the tape.
	Add(ctx context.Context, entry *domain.HistoryEntry) error

	// List returns up to limit entries, newest first.
	// A limit of zero or less returns every entry.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Get retrieves an entry by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.HistoryEntry, error)

	// Trim deletes the oldest entries so that at most keep remain.
	Trim(ctx context.Context, keep int) error

	// Clear deletes every entry.
	Clear(ctx context.Context) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)
}
