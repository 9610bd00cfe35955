package connectors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Resources lists resources when c implements driven.ResourceLister,
// and returns an empty slice otherwise.
func Resources(ctx context.Context, c driven.Connector, resourceType string, opts domain.ResourceOptions) []domain.Resource {
	lister, ok := c.(driven.ResourceLister)
	if !ok {
		return []domain.Resource{}
	}
	items := lister.Resources(ctx, resourceType, opts)
	if items == nil {
		return []domain.Resource{}
	}
	return items
}

// CreateResource creates a resource when c implements driven.ResourceCreator
// and fails with domain.ErrUnsupported otherwise.
func CreateResource(ctx context.Context, c driven.Connector, resourceType string, data map[string]any) (domain.Resource, error) {
	creator, ok := c.(driven.ResourceCreator)
	if !ok {
		return nil, fmt.Errorf("%s: create %s: %w", c.Config().ID, resourceType, domain.ErrUnsupported)
	}
	return creator.CreateResource(ctx, resourceType, data)
}

// Sync runs c's sync routine when it implements driven.Syncer.
func Sync(ctx context.Context, c driven.Connector, opts domain.ResourceOptions) domain.SyncResult {
	syncer, ok := c.(driven.Syncer)
	if !ok {
		return domain.SyncResult{Synced: 0, Status: domain.SyncNotImplemented}
	}
	return syncer.Sync(ctx, opts)
}
