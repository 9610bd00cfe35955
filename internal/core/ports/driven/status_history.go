package driven

import (
	"context"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// StatusHistory persists the outcome of status checks.
// Implementations: memory, sqlite.
type StatusHistory interface {
	// Record appends one status check.
	Record(ctx context.Context, rec domain.StatusRecord) error

	// History returns recent checks for a connector, most recent first.
	History(ctx context.Context, connectorID string, limit int) ([]domain.StatusRecord, error)

	// Prune keeps the most recent keep records per connector.
	Prune(ctx context.Context, keep int) error
}
