package driven

import "github.com/custodia-labs/sercha-connect/internal/core/domain"

// ConnectorFactory creates a connector bound to cfg and an optional auth object.
// Every call returns a fresh instance; factories never cache instances.
type ConnectorFactory func(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) Connector
