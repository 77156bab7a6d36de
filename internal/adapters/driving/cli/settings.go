package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the theme, the history tape and the MCP server.

Settings are stored in ~/.abacus/config.toml. Use subcommands to change a
single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme <dark|light|mono>",
	Short: "Set the TUI theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsTheme,
}

var settingsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Configure the history tape",
}

var settingsHistoryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Record completed calculations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setHistoryEnabled(cmd, true)
	},
}

var settingsHistoryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop recording completed calculations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return setHistoryEnabled(cmd, false)
	},
}

var settingsHistoryLimitCmd = &cobra.Command{
	Use:   "limit <n>",
	Short: "Set the maximum number of entries kept",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsHistoryLimit,
}

var settingsHistoryBackendCmd = &cobra.Command{
	Use:   "backend <sqlite|memory>",
	Short: "Choose where history is stored (applies on next start)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsHistoryBackend,
}

func init() {
	settingsHistoryCmd.AddCommand(settingsHistoryEnableCmd)
	settingsHistoryCmd.AddCommand(settingsHistoryDisableCmd)
	settingsHistoryCmd.AddCommand(settingsHistoryLimitCmd)
	settingsHistoryCmd.AddCommand(settingsHistoryBackendCmd)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	settingsCmd.AddCommand(settingsHistoryCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Theme: %s\n", settings.Display.Theme.Description())
	cmd.Println()

	cmd.Println("[History]")
	if settings.History.Enabled {
		cmd.Printf("  Enabled: yes\n")
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Printf("  Limit: %d\n", settings.History.Limit)
	cmd.Printf("  Backend: %s\n", settings.History.Backend.Description())
	cmd.Println()

	cmd.Println("[MCP]")
	cmd.Printf("  Rate limit: %d calls/s\n", settings.MCP.RateLimit)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'abacus settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsTheme(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	theme := domain.Theme(strings.ToLower(args[0]))
	if err := settingsService.SetTheme(theme); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	cmd.Printf("Set theme to: %s\n", theme.Description())
	return nil
}

func setHistoryEnabled(cmd *cobra.Command, enabled bool) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetHistoryEnabled(enabled); err != nil {
		return fmt.Errorf("failed to update history: %w", err)
	}
	if enabled {
		cmd.Println("History enabled.")
	} else {
		cmd.Println("History disabled.")
	}
	return nil
}

func runSettingsHistoryLimit(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	limit, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", args[0], domain.ErrInvalidInput)
	}
	if err := settingsService.SetHistoryLimit(limit); err != nil {
		return fmt.Errorf("failed to set history limit: %w", err)
	}
	cmd.Printf("History limit set to %d.\n", limit)
	return nil
}

func runSettingsHistoryBackend(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.HistoryBackend(strings.ToLower(args[0]))
	if err := settingsService.SetHistoryBackend(backend); err != nil {
		return fmt.Errorf("failed to set history backend: %w", err)
	}
	cmd.Printf("History backend set to: %s (applies on next start)\n", backend.Description())
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Abacus Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Theme
	cmd.Println("Step 1: Select Theme")
	cmd.Println("--------------------")
	themes := domain.AllThemes()
	defaultTheme := 1
	for i, theme := range themes {
		cmd.Printf("  %d. %s\n", i+1, theme.Description())
		if theme == current.Display.Theme {
			defaultTheme = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultTheme)
	theme := themes[parseChoice(readLine(reader), len(themes), defaultTheme)-1]
	if err := settingsService.SetTheme(theme); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}
	cmd.Printf("Set theme to: %s\n\n", theme.Description())

	// Step 2: History
	cmd.Println("Step 2: History")
	cmd.Println("---------------")
	defaultEnabled := "Y/n"
	if !current.History.Enabled {
		defaultEnabled = "y/N"
	}
	cmd.Printf("Record completed calculations? [%s]: ", defaultEnabled)
	enabled := parseYesNo(readLine(reader), current.History.Enabled)
	if err := settingsService.SetHistoryEnabled(enabled); err != nil {
		return fmt.Errorf("failed to update history: %w", err)
	}

	if enabled {
		cmd.Printf("Maximum entries [%d]: ", current.History.Limit)
		limit := current.History.Limit
		if input := readLine(reader); input != "" {
			if n, err := strconv.Atoi(input); err == nil && n > 0 {
				limit = n
			} else {
				cmd.Printf("Invalid limit %q, keeping %d.\n", input, limit)
			}
		}
		if err := settingsService.SetHistoryLimit(limit); err != nil {
			return fmt.Errorf("failed to set history limit: %w", err)
		}

		backends := domain.AllHistoryBackends()
		defaultBackend := 1
		cmd.Println("Storage:")
		for i, backend := range backends {
			cmd.Printf("  %d. %s\n", i+1, backend.Description())
			if backend == current.History.Backend {
				defaultBackend = i + 1
			}
		}
		cmd.Printf("\nEnter choice [%d]: ", defaultBackend)
		backend := backends[parseChoice(readLine(reader), len(backends), defaultBackend)-1]
		if err := settingsService.SetHistoryBackend(backend); err != nil {
			return fmt.Errorf("failed to set history backend: %w", err)
		}
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return defaultVal
	}
}
