package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/logger"
)

var (
	evalJSON   bool
	evalStrict bool
)

// errNoKeys is returned when eval has no arguments and stdin is a terminal.
var errNoKeys = errors.New("no keys given: pass keys as arguments or pipe them on stdin")

var evalCmd = &cobra.Command{
	Use:   "eval [keys...]",
	Short: "Press a sequence of keys and print the display",
	Long: `Press calculator keys on a fresh calculator and print the final display.

Keys: 0-9, "." (or ","), + - * x × / ÷, = (or enter), c (clear).
Tokens that are not a single key are split into characters, so "12.5"
is the same as "1 2 . 5". With no arguments, keys are read from stdin.

Operators apply left to right as on a pocket calculator, and equals must
be pressed to finish the last operation.

Examples:
  abacus eval 5 + 3 =           # 8
  abacus eval "2+3*4="          # 20
  abacus eval 1 / 3 =           # 0.33333333
  echo "6 / 0 =" | abacus eval  # Error: Div by 0`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "output the final state as JSON")
	evalCmd.Flags().BoolVar(&evalStrict, "strict", false, "exit with an error if the calculator shows an error")
	// Stop flag parsing at the first key so "5 -3 =" is not read as a flag.
	evalCmd.Flags().SetInterspersed(false)
	rootCmd.AddCommand(evalCmd)
}

// evalOutput is the JSON shape printed by eval --json.
type evalOutput struct {
	Display    string `json:"display"`
	Expression string `json:"expression,omitempty"`
	Error      string `json:"error,omitempty"`
}

func runEval(cmd *cobra.Command, args []string) error {
	if calculatorService == nil {
		return errors.New("calculator service not configured")
	}

	tokens := args
	if len(tokens) == 0 {
		var err error
		tokens, err = readKeys(cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	inputs, err := domain.ParseKeys(tokens...)
	if err != nil {
		return err
	}

	defer logger.Elapsed(time.Now(), "eval of %d keys", len(inputs))
	snap, err := calculatorService.Evaluate(cmd.Context(), inputs)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if evalJSON {
		data, err := json.MarshalIndent(evalOutput{
			Display:    snap.Display,
			Expression: snap.Expression,
			Error:      string(snap.ErrorKind),
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		fmt.Fprintln(out, snap.Display)
	}

	if evalStrict && snap.IsError {
		return fmt.Errorf("calculator error: %s", snap.Display)
	}
	return nil
}

// readKeys reads whitespace-separated key tokens from r.
// It refuses to block on an interactive terminal.
func readKeys(r io.Reader) ([]string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, errNoKeys
	}

	var tokens []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading keys: %w", err)
	}
	if len(tokens) == 0 {
		return nil, errNoKeys
	}
	return tokens, nil
}
