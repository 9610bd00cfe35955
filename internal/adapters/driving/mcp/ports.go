package mcp

import (
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Gateway dispatches connector lifecycle operations.
	Gateway driving.ConnectorGateway

	// Settings exposes connector settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Gateway == nil {
		return ErrMissingGateway
	}
	return nil
}
