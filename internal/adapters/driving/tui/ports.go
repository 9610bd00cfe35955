// Package tui provides an interactive terminal dashboard for the connector
// gateway. It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Gateway dispatches lifecycle operations to connectors.
	Gateway driving.ConnectorGateway

	// Settings reads and writes connector settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Gateway == nil {
		return ErrMissingGateway
	}
	return nil
}
