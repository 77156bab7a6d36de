package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// mockCalculatorService implements driving.CalculatorService over real engines.
type mockCalculatorService struct {
	mu      sync.Mutex
	engines map[string]*domain.Engine
	err     error
}

func newMockCalculator() *mockCalculatorService {
	return &mockCalculatorService{engines: make(map[string]*domain.Engine)}
}

func (m *mockCalculatorService) NewSession(_ context.Context) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := fmt.Sprintf("s%d", len(m.engines)+1)
	m.engines[id] = domain.NewEngine()
	return id, nil
}

func (m *mockCalculatorService) engine(id string) (*domain.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.engines[id]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

func (m *mockCalculatorService) Press(_ context.Context, id string, ev domain.InputEvent) (domain.Snapshot, error) {
	e, err := m.engine(id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	e.Apply(ev)
	return e.Snapshot(), nil
}

func (m *mockCalculatorService) Display(_ context.Context, id string) (string, error) {
	e, err := m.engine(id)
	if err != nil {
		return "", err
	}
	return e.Display(), nil
}

func (m *mockCalculatorService) State(_ context.Context, id string) (domain.EngineState, error) {
	e, err := m.engine(id)
	if err != nil {
		return domain.EngineState{}, err
	}
	return e.State(), nil
}

func (m *mockCalculatorService) Evaluate(_ context.Context, inputs []domain.InputEvent) (domain.Snapshot, error) {
	if m.err != nil {
		return domain.Snapshot{}, m.err
	}
	e := domain.NewEngine()
	e.ApplyAll(inputs)
	return e.Snapshot(), nil
}

func (m *mockCalculatorService) CloseSession(_ context.Context, id string) error {
	if _, err := m.engine(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, id)
	return nil
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	entries   []domain.HistoryEntry
	err       error
	lastLimit int
}

func (m *mockHistoryService) Record(_ context.Context, _ string, _ domain.Calculation) error {
	return m.err
}

func (m *mockHistoryService) List(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if limit > 0 && limit < len(m.entries) {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.HistoryEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	m.entries = nil
	return m.err
}

func (m *mockHistoryService) Count(_ context.Context) (int, error) {
	return len(m.entries), m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetTheme(_ domain.Theme) error {
	return m.err
}

func (m *mockSettingsService) SetHistoryEnabled(_ bool) error {
	return m.err
}

func (m *mockSettingsService) SetHistoryLimit(_ int) error {
	return m.err
}

func (m *mockSettingsService) SetHistoryBackend(_ domain.HistoryBackend) error {
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}
