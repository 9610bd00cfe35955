package driving

import (
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// ConnectorRegistry is the process-wide catalog of connector types.
// It holds factories and configs, never instances or credentials.
type ConnectorRegistry interface {
	// Register inserts or overwrites the entry for id.
	Register(id string, factory driven.ConnectorFactory, cfg domain.ConnectorConfig)

	// ConnectorClass returns the factory registered under id.
	ConnectorClass(id string) (driven.ConnectorFactory, bool)

	// Config returns the config registered under id.
	Config(id string) (domain.ConnectorConfig, bool)

	// ListAll returns every config in registration order.
	ListAll() []domain.ConnectorConfig

	// ListByCategory returns configs whose category equals category exactly.
	ListByCategory(category string) []domain.ConnectorConfig

	// GetConnector instantiates the connector registered under id.
	// Returns false for an unknown id.
	GetConnector(id string, auth *domain.ConnectorAuth) (driven.Connector, bool)

	// ListConnectors lists all configs, or only those in category when non-empty.
	ListConnectors(category string) []domain.ConnectorConfig
}
