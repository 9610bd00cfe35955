package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list
connectors, check their status, and send email or WhatsApp messages.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start a streamable HTTP server instead.

Examples:
  # Stdio mode (default)
  sercha-connect mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  sercha-connect mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "sercha-connect": {
        "command": "/path/to/sercha-connect",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

var mcpPort int

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	gw, err := requireGateway()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Gateway: gw, Settings: settingsService})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := fmt.Sprintf(":%d", mcpPort)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
