package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

// Ensure CalculatorService implements the interface.
var _ driving.CalculatorService = (*CalculatorService)(nil)

// session is one engine plus the lock that serialises input to it.
type session struct {
	mu     sync.Mutex
	engine *domain.Engine
	closed bool
}

// CalculatorService manages calculator sessions.
// The engines themselves are not thread-safe; every Press on a session
// holds that session's lock for the whole transition.
type CalculatorService struct {
	mu       sync.RWMutex
	sessions map[string]*session
	history  driving.HistoryService
}

// NewCalculatorService creates a new calculator service.
// The history parameter is optional (can be nil).
func NewCalculatorService(history driving.HistoryService) *CalculatorService {
	return &CalculatorService{
		sessions: make(map[string]*session),
		history:  history,
	}
}

// NewSession creates a calculator showing "0" and returns its ID.
func (s *CalculatorService) NewSession(_ context.Context) (string, error) {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &session{engine: domain.NewEngine()}
	s.mu.Unlock()

	logger.Debug("Created calculator session %s", id)
	return id, nil
}

// Press applies one input to a session.
func (s *CalculatorService) Press(
	ctx context.Context, sessionID string, input domain.InputEvent,
) (domain.Snapshot, error) {
	if err := input.Validate(); err != nil {
		return domain.Snapshot{}, err
	}

	sess, err := s.lookup(sessionID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return domain.Snapshot{}, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionClosed)
	}

	snap := s.apply(ctx, sessionID, sess.engine, input)
	return snap, nil
}

// Display returns the current display text of a session.
func (s *CalculatorService) Display(_ context.Context, sessionID string) (string, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Display(), nil
}

// State returns a copy of the full engine state of a session.
func (s *CalculatorService) State(_ context.Context, sessionID string) (domain.EngineState, error) {
	sess, err := s.lookup(sessionID)
	if err != nil {
		return domain.EngineState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.State(), nil
}

// Evaluate runs inputs on a fresh engine and returns the final snapshot.
// Completed calculations along the way are recorded in history.
func (s *CalculatorService) Evaluate(ctx context.Context, inputs []domain.InputEvent) (domain.Snapshot, error) {
	for i, input := range inputs {
		if err := input.Validate(); err != nil {
			return domain.Snapshot{}, fmt.Errorf("input %d: %w", i+1, err)
		}
	}

	logger.Section("Evaluate")
	engine := domain.NewEngine()
	snap := engine.Snapshot()
	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return domain.Snapshot{}, err
		}
		snap = s.apply(ctx, "", engine, input)
	}
	return snap, nil
}

// CloseSession discards a session.
func (s *CalculatorService) CloseSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}

	sess.mu.Lock()
	sess.closed = true
	sess.mu.Unlock()

	logger.Debug("Closed calculator session %s", sessionID)
	return nil
}

// SessionCount returns the number of open sessions.
func (s *CalculatorService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *CalculatorService) lookup(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrNotFound)
	}
	return sess, nil
}

// apply feeds one input to engine and records any completed calculation.
// History failures are logged, never returned: the calculator keeps working.
func (s *CalculatorService) apply(
	ctx context.Context, sessionID string, engine *domain.Engine, input domain.InputEvent,
) domain.Snapshot {
	wasError := engine.State().IsError
	engine.Apply(input)
	snap := engine.Snapshot()

	logger.Debug("Key %s -> %q", input.Label(), snap.Display)
	if snap.IsError && !wasError {
		logger.Debug("Calculation failed: %s", snap.ErrorKind)
	}

	calc, ok := engine.LastCalculation()
	if ok && s.history != nil {
		if err := s.history.Record(ctx, sessionID, calc); err != nil {
			logger.Warn("Failed to record %q: %v", calc.Expression, err)
		}
	}
	return snap
}
