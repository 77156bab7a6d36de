package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records completed calculations on the history tape.
type HistoryService struct {
	store    driven.HistoryStore
	settings driving.SettingsService
	now      func() time.Time
}

// NewHistoryService creates a new history service.
// The settings parameter is optional; without it history is always
// enabled with the default limit.
func NewHistoryService(store driven.HistoryStore, settings driving.SettingsService) *HistoryService {
	return &HistoryService{
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Record stores a completed calculation and trims the tape to the
// configured limit.
func (s *HistoryService) Record(ctx context.Context, sessionID string, calc domain.Calculation) error {
	cfg := s.historySettings()
	if !cfg.Enabled {
		logger.Debug("History disabled, not recording %q", calc.Expression)
		return nil
	}

	entry := &domain.HistoryEntry{
		ID:         uuid.New().String(),
		SessionID:  sessionID,
		Expression: calc.Expression,
		Result:     calc.Result,
		CreatedAt:  s.now(),
	}

	if err := s.store.Add(ctx, entry); err != nil {
		return fmt.Errorf("recording history: %w", err)
	}
	logger.Debug("Recorded history entry %s: %s", entry.ID, entry)

	if err := s.store.Trim(ctx, cfg.Limit); err != nil {
		return fmt.Errorf("trimming history: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
// A limit of zero or less uses the configured history limit.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	cfg := s.historySettings()
	if !cfg.Enabled {
		return nil, domain.ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = cfg.Limit
	}
	return s.store.List(ctx, limit)
}

// Get retrieves an entry by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.HistoryEntry, error) {
	return s.store.Get(ctx, id)
}

// Clear deletes every entry.
func (s *HistoryService) Clear(ctx context.Context) error {
	logger.Info("Clearing history")
	return s.store.Clear(ctx)
}

// Count returns the number of stored entries.
func (s *HistoryService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *HistoryService) historySettings() domain.HistorySettings {
	defaults := domain.DefaultAppSettings().History
	if s.settings == nil {
		return defaults
	}
	settings, err := s.settings.Get()
	if err != nil {
		logger.Warn("Reading history settings: %v", err)
		return defaults
	}
	return settings.History
}
