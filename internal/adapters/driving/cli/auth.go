package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored connector credentials",
	Long: `Store or forget the credentials handed to connectors.

Stored credentials take precedence over settings such as STRIPE_SECRET_KEY.

Examples:
  # Prompt for the credentials the connector reads
  sercha-connect auth set stripe

  # Non-interactive
  sercha-connect auth set twilio_whatsapp account_sid=AC123 auth_token=secret

  # OAuth tokens obtained elsewhere, valid for one hour
  sercha-connect auth set gmail access_token=ya29... --expires-in 1h

  # Forget stored credentials
  sercha-connect auth delete stripe`,
}

var authSetCmd = &cobra.Command{
	Use:   "set [connector-id] [key=value...]",
	Short: "Store credentials for a connector",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAuthSet,
}

var authDeleteCmd = &cobra.Command{
	Use:   "delete [connector-id]",
	Short: "Forget stored credentials",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthDelete,
}

// Flags for auth set.
var (
	authExpiresIn time.Duration
	authScopes    []string
)

func init() {
	authSetCmd.Flags().DurationVar(&authExpiresIn, "expires-in", 0, "Credential lifetime (0 = never expires)")
	authSetCmd.Flags().StringSliceVar(&authScopes, "scopes", nil, "Granted scopes (comma-separated)")

	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authDeleteCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	id := args[0]
	cfg, ok := findConfig(gw, id)
	if !ok {
		return fmt.Errorf("connector %q: %w", id, domain.ErrNotFound)
	}

	creds, err := parsePairs(args[1:])
	if err != nil {
		return err
	}
	if len(creds) == 0 {
		reader := bufio.NewReader(cmd.InOrStdin())
		for _, key := range cfg.CredentialKeys {
			cmd.Printf("%s %s: ", cfg.Name, key)
			value := readSecret(cmd.InOrStdin(), reader)
			cmd.Println()
			if value != "" {
				creds[key] = value
			}
		}
	}

	auth := domain.ConnectorAuth{
		Kind:        cfg.AuthKind,
		Credentials: creds,
		Scopes:      authScopes,
	}
	if authExpiresIn > 0 {
		auth.ExpiresAt = time.Now().Add(authExpiresIn).UTC()
	}

	if err := gw.SaveAuth(cmd.Context(), id, auth); err != nil {
		return err
	}
	cmd.Printf("Stored %d credential(s) for %s.\n", len(creds), id)
	return nil
}

func runAuthDelete(cmd *cobra.Command, args []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}
	if _, ok := findConfig(gw, args[0]); !ok {
		return fmt.Errorf("connector %q: %w", args[0], domain.ErrNotFound)
	}
	if err := gw.DeleteAuth(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Forgot credentials for %s.\n", args[0])
	return nil
}

func findConfig(gw driving.ConnectorGateway, id string) (domain.ConnectorConfig, bool) {
	for _, cfg := range gw.List("") {
		if cfg.ID == id {
			return cfg, true
		}
	}
	return domain.ConnectorConfig{}, false
}

// readSecret reads a value without echo when in is a terminal,
// otherwise one line from reader.
func readSecret(in io.Reader, reader *bufio.Reader) string {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
