package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
// Entries are kept in insertion order; the tape lives as long as the process.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{
		entries: make([]domain.HistoryEntry, 0),
	}
}

// Add appends an entry to the tape.
func (s *HistoryStore) Add(_ context.Context, entry *domain.HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil history entry", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

// List returns up to limit entries, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	result := make([]domain.HistoryEntry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.entries[i])
	}
	return result, nil
}

// Get retrieves an entry by ID.
func (s *HistoryStore) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			entry := s.entries[i]
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("history entry %s: %w", id, domain.ErrNotFound)
}

// Trim deletes the oldest entries so that at most keep remain.
func (s *HistoryStore) Trim(_ context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) > keep {
		s.entries = append([]domain.HistoryEntry(nil), s.entries[len(s.entries)-keep:]...)
	}
	return nil
}

// Clear deletes every entry.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.HistoryEntry, 0)
	return nil
}

// Count returns the number of stored entries.
func (s *HistoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}
