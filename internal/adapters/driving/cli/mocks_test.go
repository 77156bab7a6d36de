package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// mockCalculatorService evaluates on real engines so command output
// matches what users see.
type mockCalculatorService struct {
	evaluated [][]domain.InputEvent
	err       error
}

func (m *mockCalculatorService) NewSession(_ context.Context) (string, error) {
	return "session-1", m.err
}

func (m *mockCalculatorService) Press(
	_ context.Context, _ string, _ domain.InputEvent,
) (domain.Snapshot, error) {
	return domain.Snapshot{}, m.err
}

func (m *mockCalculatorService) Display(_ context.Context, _ string) (string, error) {
	return domain.InitialDisplay, m.err
}

func (m *mockCalculatorService) State(_ context.Context, _ string) (domain.EngineState, error) {
	return domain.InitialState(), m.err
}

func (m *mockCalculatorService) Evaluate(
	_ context.Context, inputs []domain.InputEvent,
) (domain.Snapshot, error) {
	if m.err != nil {
		return domain.Snapshot{}, m.err
	}
	m.evaluated = append(m.evaluated, inputs)
	engine := domain.NewEngine()
	engine.ApplyAll(inputs)
	return engine.Snapshot(), nil
}

func (m *mockCalculatorService) CloseSession(_ context.Context, _ string) error {
	return m.err
}

// mockHistoryService keeps entries newest first.
type mockHistoryService struct {
	entries   []domain.HistoryEntry
	err       error
	lastLimit int
	cleared   bool
}

func (m *mockHistoryService) Record(_ context.Context, sessionID string, calc domain.Calculation) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append([]domain.HistoryEntry{{
		SessionID:  sessionID,
		Expression: calc.Expression,
		Result:     calc.Result,
	}}, m.entries...)
	return nil
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
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.entries = nil
	m.cleared = true
	return nil
}

func (m *mockHistoryService) Count(_ context.Context) (int, error) {
	return len(m.entries), m.err
}

// mockSettingsService stores settings in memory and validates like the
// real service.
type mockSettingsService struct {
	settings    domain.AppSettings
	err         error
	validateErr error
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{settings: domain.DefaultAppSettings()}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	if m.err != nil {
		return m.err
	}
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return domain.ErrUnsupportedType
	}
	m.settings.Display.Theme = theme
	return m.err
}

func (m *mockSettingsService) SetHistoryEnabled(enabled bool) error {
	m.settings.History.Enabled = enabled
	return m.err
}

func (m *mockSettingsService) SetHistoryLimit(limit int) error {
	if limit <= 0 {
		return domain.ErrInvalidInput
	}
	m.settings.History.Limit = limit
	return m.err
}

func (m *mockSettingsService) SetHistoryBackend(backend domain.HistoryBackend) error {
	if !backend.IsValid() {
		return domain.ErrUnsupportedType
	}
	m.settings.History.Backend = backend
	return m.err
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// withServices wires mocks for the duration of a test.
func withServices(
	t *testing.T,
	calc *mockCalculatorService,
	history *mockHistoryService,
	settings *mockSettingsService,
) {
	t.Helper()

	origCalc, origHistory, origSettings := calculatorService, historyService, settingsService
	t.Cleanup(func() {
		calculatorService, historyService, settingsService = origCalc, origHistory, origSettings
	})

	calculatorService, historyService, settingsService = nil, nil, nil
	if calc != nil {
		calculatorService = calc
	}
	if history != nil {
		historyService = history
	}
	if settings != nil {
		settingsService = settings
	}
}

// execute runs the root command with args and returns everything
// written to its output. stdin is used when non-empty.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	evalJSON, evalStrict = false, false
	historyLimit, historyJSON = 0, false

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
