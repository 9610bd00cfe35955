package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive connector dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard lists every connector with its live status. Select one to see
its settings and recent status checks, and to authorize, test, revoke or
sync it.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	gw, err := requireGateway()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{Gateway: gw, Settings: settingsService})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
