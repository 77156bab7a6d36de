package tui

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// MockCalculatorService implements driving.CalculatorService over real engines.
type MockCalculatorService struct {
	mu      sync.Mutex
	engines map[string]*domain.Engine
	closed  []string
}

func (m *MockCalculatorService) NewSession(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.engines == nil {
		m.engines = make(map[string]*domain.Engine)
	}
	id := fmt.Sprintf("session-%d", len(m.engines)+len(m.closed)+1)
	m.engines[id] = domain.NewEngine()
	return id, nil
}

func (m *MockCalculatorService) engine(id string) (*domain.Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *MockCalculatorService) Press(_ context.Context, id string, ev domain.InputEvent) (domain.Snapshot, error) {
	e, err := m.engine(id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	e.Apply(ev)
	return e.Snapshot(), nil
}

func (m *MockCalculatorService) Display(_ context.Context, id string) (string, error) {
	e, err := m.engine(id)
	if err != nil {
		return "", err
	}
	return e.Display(), nil
}

func (m *MockCalculatorService) State(_ context.Context, id string) (domain.EngineState, error) {
	e, err := m.engine(id)
	if err != nil {
		return domain.EngineState{}, err
	}
	return e.State(), nil
}

func (m *MockCalculatorService) Evaluate(_ context.Context, inputs []domain.InputEvent) (domain.Snapshot, error) {
	e := domain.NewEngine()
	e.ApplyAll(inputs)
	return e.Snapshot(), nil
}

func (m *MockCalculatorService) CloseSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.engines[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.engines, id)
	m.closed = append(m.closed, id)
	return nil
}

// MockHistoryService implements driving.HistoryService for testing.
type MockHistoryService struct {
	Entries []domain.HistoryEntry
}

func (m *MockHistoryService) Record(_ context.Context, sessionID string, calc domain.Calculation) error {
	m.Entries = append([]domain.HistoryEntry{{
		ID:         fmt.Sprint(len(m.Entries) + 1),
		SessionID:  sessionID,
		Expression: calc.Expression,
		Result:     calc.Result,
	}}, m.Entries...)
	return nil
}

func (m *MockHistoryService) List(_ context.Context, _ int) ([]domain.HistoryEntry, error) {
	return m.Entries, nil
}

func (m *MockHistoryService) Get(_ context.Context, _ string) (*domain.HistoryEntry, error) {
	return nil, domain.ErrNotFound
}

func (m *MockHistoryService) Clear(_ context.Context) error {
	m.Entries = nil
	return nil
}

func (m *MockHistoryService) Count(_ context.Context) (int, error) {
	return len(m.Entries), nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Current domain.AppSettings
	GetErr  error
}

func newMockSettings() *MockSettingsService {
	return &MockSettingsService{Current: domain.DefaultAppSettings()}
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	s := m.Current
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Current = *settings
	return nil
}

func (m *MockSettingsService) SetTheme(theme domain.Theme) error {
	m.Current.Display.Theme = theme
	return nil
}

func (m *MockSettingsService) SetHistoryEnabled(enabled bool) error {
	m.Current.History.Enabled = enabled
	return nil
}

func (m *MockSettingsService) SetHistoryLimit(limit int) error {
	m.Current.History.Limit = limit
	return nil
}

func (m *MockSettingsService) SetHistoryBackend(backend domain.HistoryBackend) error {
	m.Current.History.Backend = backend
	return nil
}

func (m *MockSettingsService) Validate() error {
	return nil
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func TestNewPorts(t *testing.T) {
	calc := &MockCalculatorService{}
	hist := &MockHistoryService{}
	set := newMockSettings()

	ports := NewPorts(calc, hist, set)

	assert.Same(t, calc, ports.Calculator)
	assert.Same(t, hist, ports.History)
	assert.Same(t, set, ports.Settings)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrInvalidPorts},
		{name: "missing calculator", ports: &Ports{History: &MockHistoryService{}}, wantErr: ErrMissingCalculatorService},
		{name: "calculator only", ports: &Ports{Calculator: &MockCalculatorService{}}},
		{name: "all set", ports: NewPorts(&MockCalculatorService{}, &MockHistoryService{}, newMockSettings())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
