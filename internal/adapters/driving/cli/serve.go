package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/rest"
	"github.com/custodia-labs/sercha-connect/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the REST API under /api/connectors.

The server also answers /healthz and exposes Prometheus metrics on /metrics.
Unless --monitor-interval is 0, every connector's status is rechecked in
the background so history and the connector_up gauge stay current.
It stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr       string
	monitorInterval time.Duration
)

const defaultMonitorInterval = 5 * time.Minute

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", rest.DefaultAddr, "Listen address")
	serveCmd.Flags().DurationVar(&monitorInterval, "monitor-interval", defaultMonitorInterval,
		"Background status check interval (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	e, err := rest.New(logger.Zap(), rest.Ports{Gateway: gw, Settings: settingsService})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	if newMonitor != nil && monitorInterval > 0 {
		monitor := newMonitor(monitorInterval)
		g.Go(func() error {
			if err := monitor.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
		logger.Info("status monitor every %s", monitorInterval)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "API listening on %s\n", serveAddr)
	g.Go(func() error {
		return rest.Run(ctx, e, serveAddr)
	})
	return g.Wait()
}
