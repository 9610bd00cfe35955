// Command sercha-connect runs the connector gateway CLI, REST API,
// MCP server and terminal dashboard.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/cli"
)

// version is set by the linker: -ldflags "-X main.version=1.2.3".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	if code != 0 {
		os.Exit(code)
	}
}

func run(ctx context.Context) int {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
