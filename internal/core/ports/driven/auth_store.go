package driven

import (
	"context"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// AuthStore supplies the auth object handed to a connector.
// Implementations: memory, sqlite, redis.
type AuthStore interface {
	// Get returns the stored auth for a connector id.
	// Returns nil, nil when nothing is stored.
	Get(ctx context.Context, connectorID string) (*domain.ConnectorAuth, error)

	// Save stores or replaces the auth for a connector id.
	Save(ctx context.Context, connectorID string, auth domain.ConnectorAuth) error

	// Delete removes stored auth. Deleting a missing entry is not an error.
	Delete(ctx context.Context, connectorID string) error

	// List returns the connector ids with stored auth.
	List(ctx context.Context) ([]string, error)
}
