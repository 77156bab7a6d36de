// Package cli provides the cobra command tree for the abacus binary.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services used by commands. Wired by main through SetServices.
var (
	calculatorService driving.CalculatorService
	historyService    driving.HistoryService
	settingsService   driving.SettingsService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "abacus",
	Short: "A four-function calculator for the terminal",
	Long: `Abacus is a four-function calculator with a keypad TUI, a one-shot
eval command and an MCP server for AI assistants.

Inputs are calculator keys, not expressions: "2 + 3 × 4 =" is evaluated
left to right as a pocket calculator would, giving 20.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices wires the core services into the command tree.
// Any of them may be nil; commands that need a missing service fail
// with a "not configured" error.
func SetServices(calc driving.CalculatorService, history driving.HistoryService, settings driving.SettingsService) {
	calculatorService = calc
	historyService = history
	settingsService = settings
}

// Execute runs the root command. Commands see ctx through cmd.Context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
