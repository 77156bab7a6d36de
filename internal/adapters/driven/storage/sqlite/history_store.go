package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
// Rows are ordered by their autoincrement sequence, not by created_at,
// so entries recorded within the same clock tick keep their order.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Add appends an entry to the tape.
func (s *historyStore) Add(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: nil history entry", domain.ErrInvalidInput)
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO history (id, session_id, expression, result, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.SessionID, entry.Expression, entry.Result,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as no limit.
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, session_id, expression, result, created_at
		FROM history ORDER BY seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Get retrieves an entry by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, session_id, expression, result, created_at
		FROM history WHERE id = ?
	`, id)

	entry, err := scanHistoryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("history entry %s: %w", id, domain.ErrNotFound)
	}
	return entry, err
}

// Trim deletes the oldest entries so that at most keep remain.
func (s *historyStore) Trim(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}

	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return nil
}

// Clear deletes every entry.
func (s *historyStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *historyStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM history")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return count, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHistoryEntry(sc scanner) (*domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	var createdAt string

	if err := sc.Scan(&entry.ID, &entry.SessionID, &entry.Expression, &entry.Result, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = t
	}
	return &entry, nil
}
