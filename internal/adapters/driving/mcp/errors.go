// Package mcp provides an MCP (Model Context Protocol) server adapter for
// sercha-connect. It lets AI assistants inspect connectors, list provider
// resources and send messages through the gateway.
package mcp

import "errors"

// ErrMissingGateway is returned when the connector gateway is not provided.
var ErrMissingGateway = errors.New("mcp: connector gateway is required")
