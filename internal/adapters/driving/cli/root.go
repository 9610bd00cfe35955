// Package cli implements the sercha-connect command line with cobra.
// Commands reach connectors only through the gateway and settings ports,
// which main supplies through SetBootstrap.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-connect/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Options are the global flags.
type Options struct {
	// Verbose enables debug and info logs.
	Verbose bool
	// JSON prints machine-readable output.
	JSON bool
	// LogFormat is "console" or "json".
	LogFormat string
	// ConfigPath is the TOML settings file.
	ConfigPath string
	// DataDir holds the SQLite database.
	DataDir string
	// RedisURL selects the Redis auth store instead of SQLite.
	RedisURL string
}

// Runtime holds the services a command runs against.
type Runtime struct {
	Gateway  driving.ConnectorGateway
	Settings driving.SettingsService
	// Monitor builds a background status monitor. May be nil.
	Monitor func(interval time.Duration) driving.StatusMonitor
	// Close releases stores. May be nil.
	Close func() error
}

// Bootstrap builds the runtime once flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Runtime, error)

var (
	opts      Options
	bootstrap Bootstrap

	gateway         driving.ConnectorGateway
	settingsService driving.SettingsService
	newMonitor      func(interval time.Duration) driving.StatusMonitor
	closeRuntime    func() error
)

// skipBootstrap marks commands that need no services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "sercha-connect",
	Short: "Connector gateway for Gmail, Google Calendar, Stripe, WhatsApp and GitHub",
	Long: `sercha-connect exposes third-party integrations through one lifecycle:
authorize, status, test, revoke and resources.

Settings such as GMAIL_CLIENT_ID or STRIPE_SECRET_KEY are read from the
environment, an optional .env file, then the settings file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable verbose logging")
	flags.BoolVar(&opts.JSON, "json", false, "Print JSON output")
	flags.StringVar(&opts.LogFormat, "log-format", "", "Log encoding: console or json")
	flags.StringVar(&opts.ConfigPath, "config", "", "Settings file (default ~/.sercha-connect/settings.toml)")
	flags.StringVar(&opts.DataDir, "db", "", "Data directory for the SQLite store (default ~/.sercha-connect/data)")
	flags.StringVar(&opts.RedisURL, "redis", "", "Redis URL for the auth store, e.g. redis://localhost:6379/0")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap installs the function that builds services from flags.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command and releases the runtime afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeRuntime != nil {
		if cerr := closeRuntime(); cerr != nil {
			logger.Warn("closing stores: %v", cerr)
		}
		closeRuntime = nil
	}
	return err
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if opts.LogFormat != "" {
		logger.SetFormat(logger.Format(opts.LogFormat))
	}

	if cmd.Annotations[skipBootstrap] == "true" || gateway != nil || bootstrap == nil {
		return nil
	}

	rt, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("starting: %w", err)
	}
	gateway = rt.Gateway
	settingsService = rt.Settings
	newMonitor = rt.Monitor
	closeRuntime = rt.Close
	return nil
}

func requireGateway() (driving.ConnectorGateway, error) {
	if gateway == nil {
		return nil, errors.New("connector gateway not configured")
	}
	return gateway, nil
}

func requireSettings() (driving.SettingsService, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}
