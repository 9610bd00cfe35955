package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources [connector-id] [resource-type]",
	Short: "List provider resources",
	Long: `List provider resources as JSON.

Resource types:
  gmail            messages, labels
  google_calendar  events, calendars
  stripe           customers, subscriptions
  twilio_whatsapp  messages
  github           repositories, issues

Examples:
  sercha-connect resources gmail messages --query "is:unread" --limit 5
  sercha-connect resources google_calendar events --calendar work@example.com
  sercha-connect resources github issues --query owner/repo`,
	Args: cobra.ExactArgs(2),
	RunE: runResources,
}

var createCmd = &cobra.Command{
	Use:   "create [connector-id] [resource-type] key=value...",
	Short: "Create a provider resource",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCreate,
}

func init() {
	resourcesCmd.Flags().IntVarP(&resourceLimit, "limit", "n", 0, "Maximum number of resources (0 = connector default)")
	resourcesCmd.Flags().StringVarP(&resourceQuery, "query", "q", "", "Provider search expression")
	resourcesCmd.Flags().StringVar(&calendarID, "calendar", "", "Calendar id for events (default primary)")

	rootCmd.AddCommand(resourcesCmd)
	rootCmd.AddCommand(createCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	list, err := gw.Resources(cmd.Context(), args[0], args[1], domain.ResourceOptions{
		Limit:      resourceLimit,
		Query:      resourceQuery,
		CalendarID: calendarID,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, list)
}

func runCreate(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	pairs, err := parsePairs(args[2:])
	if err != nil {
		return err
	}
	data := make(map[string]any, len(pairs))
	for k, v := range pairs {
		data[k] = v
	}

	created, err := gw.CreateResource(cmd.Context(), args[0], args[1], data)
	if err != nil {
		return err
	}
	return printJSON(cmd, created)
}
