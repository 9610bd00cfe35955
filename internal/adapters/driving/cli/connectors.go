package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered connectors",
	Long: `List every registered connector, or only those in one category.

Categories: communication, productivity, billing, development.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var statusCmd = &cobra.Command{
	Use:   "status [connector-id]",
	Short: "Check connector status",
	Long: `Recompute the status of one connector, or of every connector when no
id is given. Each check is recorded in the status history.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

var historyCmd = &cobra.Command{
	Use:   "history [connector-id]",
	Short: "Show recent status checks",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var authorizeCmd = &cobra.Command{
	Use:   "authorize [connector-id]",
	Short: "Start authorization",
	Long: `Start authorization for a connector.

OAuth connectors (gmail, google_calendar) print a consent URL to open in a
browser. Key-based connectors check the configured credentials.`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthorize,
}

var revokeCmd = &cobra.Command{
	Use:   "revoke [connector-id]",
	Short: "Revoke provider access and forget stored credentials",
	Args:  cobra.ExactArgs(1),
	RunE:  runRevoke,
}

var testCmd = &cobra.Command{
	Use:   "test [connector-id]",
	Short: "Probe a connector with one authenticated request",
	Args:  cobra.ExactArgs(1),
	RunE:  runTest,
}

var syncCmd = &cobra.Command{
	Use:   "sync [connector-id]",
	Short: "Run a connector's sync routine",
	Args:  cobra.ExactArgs(1),
	RunE:  runSync,
}

// Flags shared by the listing commands.
var (
	listCategory  string
	historyLimit  int
	resourceLimit int
	resourceQuery string
	calendarID    string
)

// errActionFailed makes revoke and test exit non-zero.
var errActionFailed = errors.New("action failed")

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only list connectors in this category")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of checks to show")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(authorizeCmd)
	rootCmd.AddCommand(revokeCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(syncCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	configs := gw.List(listCategory)
	if opts.JSON {
		return printJSON(cmd, configs)
	}

	rows := make([][]string, len(configs))
	for i, cfg := range configs {
		rows[i] = []string{cfg.ID, cfg.Icon + " " + cfg.Name, cfg.Category, string(cfg.AuthKind)}
	}
	return printTable(cmd, []string{"id", "name", "category", "auth"}, rows)
}

func runStatus(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	var reports []driving.StatusReport
	if len(args) == 0 {
		reports = gw.StatusAll(cmd.Context())
	} else {
		report, err := gw.Status(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		reports = []driving.StatusReport{report}
	}

	if opts.JSON {
		return printJSON(cmd, reports)
	}
	rows := make([][]string, len(reports))
	for i, r := range reports {
		rows[i] = []string{r.ConnectorID, string(r.Status), r.Message}
	}
	return printTable(cmd, []string{"id", "status", "message"}, rows)
}

func runHistory(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	records, err := gw.History(cmd.Context(), args[0], historyLimit)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(cmd, records)
	}
	if len(records) == 0 {
		cmd.Println("No status checks recorded.")
		return nil
	}

	rows := make([][]string, len(records))
	for i, rec := range records {
		rows[i] = []string{rec.CheckedAt.Local().Format(time.DateTime), string(rec.Status), rec.Message}
	}
	return printTable(cmd, []string{"checked at", "status", "message"}, rows)
}

func runAuthorize(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	result, err := gw.Authorize(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(cmd, result)
	}

	if result.AuthURL != "" {
		cmd.Printf("Open this URL to authorize %s:\n\n  %s\n\n", args[0], result.AuthURL)
		cmd.Printf("State: %s\n", result.State)
		return nil
	}
	cmd.Printf("%s: %s\n", result.Status, result.Message)
	return nil
}

func runRevoke(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}
	result, err := gw.Revoke(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printAction(cmd, result)
}

func runTest(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}
	result, err := gw.Test(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printAction(cmd, result)
}

func printAction(cmd *cobra.Command, result driving.ActionResult) error {
	if opts.JSON {
		if err := printJSON(cmd, result); err != nil {
			return err
		}
	} else {
		cmd.Println(result.Message)
	}
	if !result.Success {
		return errActionFailed
	}
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	cmd.Printf("Synchronising %s...\n", args[0])
	result, err := gw.Sync(cmd.Context(), args[0], domain.ResourceOptions{})
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(cmd, result)
	}
	cmd.Printf("Synced %d items (%s)\n", result.Synced, result.Status)
	return nil
}
