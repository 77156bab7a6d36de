package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed calculations",
	Long: `Show the history tape of completed calculations, newest first.

Every successful "=" from eval, the TUI or the MCP server is recorded
unless history is disabled with 'abacus settings history disable'.`,
	RunE: runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of entries (0 = configured limit)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output entries as JSON")
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// historyEntryOutput is the JSON shape of one entry.
type historyEntryOutput struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	CreatedAt  string `json:"created_at"`
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	entries, err := historyService.List(cmd.Context(), historyLimit)
	if errors.Is(err, domain.ErrHistoryDisabled) {
		cmd.Println("History is disabled. Enable it with 'abacus settings history enable'.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		out := make([]historyEntryOutput, 0, len(entries))
		for i := range entries {
			out = append(out, historyEntryOutput{
				ID:         entries[i].ID,
				Expression: entries[i].Expression,
				Result:     entries[i].Result,
				CreatedAt:  entries[i].CreatedAt.Format(time.RFC3339),
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Println("No calculations yet.")
		return nil
	}

	for i := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", entries[i].CreatedAt.Format("2006-01-02 15:04"), entries[i].String())
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	count, err := historyService.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count history: %w", err)
	}
	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	cmd.Printf("Deleted %d entries.\n", count)
	return nil
}
