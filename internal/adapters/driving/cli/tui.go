package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/abacus-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	CalculatorService driving.CalculatorService
	HistoryService    driving.HistoryService
	SettingsService   driving.SettingsService

	// ConfigWatcher, when set, reloads the theme if the config file changes.
	ConfigWatcher driven.ConfigWatcher
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive calculator",
	Long: `Launch the interactive terminal calculator.

Controls:
  0-9, .     - Digits and decimal point
  + - * /    - Operators (x also multiplies)
  = / Enter  - Equals
  c / Delete - Clear
  ↑/k, ↓/j   - Navigate menus and history
  Esc        - Back
  ?          - Toggle help
  q          - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds TUI ports from the configuration, falling back to the
// services wired through SetServices.
func tuiPorts() *tui.Ports {
	ports := tui.NewPorts(calculatorService, historyService, settingsService)
	if tuiConfig == nil {
		return ports
	}
	if tuiConfig.CalculatorService != nil {
		ports.Calculator = tuiConfig.CalculatorService
	}
	if tuiConfig.HistoryService != nil {
		ports.History = tuiConfig.HistoryService
	}
	if tuiConfig.SettingsService != nil {
		ports.Settings = tuiConfig.SettingsService
	}
	return ports
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := app.NewProgram()

	if tuiConfig != nil && tuiConfig.ConfigWatcher != nil {
		go func() {
			err := tuiConfig.ConfigWatcher.Watch(ctx, func() {
				p.Send(messages.ConfigChanged{})
			})
			if err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	_, runErr := p.Run()
	if err := app.Close(); err != nil {
		logger.Warn("closing calculator session: %v", err)
	}
	if runErr != nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}

	return nil
}
