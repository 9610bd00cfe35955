package driven

import (
	"context"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// Connector is the lifecycle contract every integration implements.
// Instances are bound to one config and one optional auth object and
// are discarded after the call that created them.
type Connector interface {
	// Config returns the static descriptor the connector was created with.
	Config() domain.ConnectorConfig

	// Authorize initiates or validates the provider's auth handshake.
	// OAuth connectors return a consent URL and a state token.
	// Key-based connectors validate configured credentials and return a
	// readiness status, or an error wrapping ErrAuthRequired/ErrAuthInvalid.
	Authorize(ctx context.Context) (domain.AuthResult, error)

	// AuthStatus checks credentials in strict order: none present,
	// expired (no network call), then a live probe.
	AuthStatus(ctx context.Context) domain.ConnectorStatus

	// Revoke invalidates credentials at the provider on a best-effort basis.
	// Returns true when there is nothing to revoke.
	Revoke(ctx context.Context) bool

	// TestConnection issues one lightweight authenticated request.
	// Returns true only on a 2xx response. Never fails with an error.
	TestConnection(ctx context.Context) bool
}

// ResourceLister is implemented by connectors that expose listable resources.
type ResourceLister interface {
	// Resources lists items of resourceType. Unknown types and provider
	// failures both yield an empty slice.
	Resources(ctx context.Context, resourceType string, opts domain.ResourceOptions) []domain.Resource
}

// ResourceCreator is implemented by connectors with a write path.
type ResourceCreator interface {
	CreateResource(ctx context.Context, resourceType string, data map[string]any) (domain.Resource, error)
}

// Syncer is implemented by connectors that can pull data in bulk.
type Syncer interface {
	Sync(ctx context.Context, opts domain.ResourceOptions) domain.SyncResult
}

// EmailSender sends email through the provider (Gmail).
type EmailSender interface {
	Connector
	SendEmail(ctx context.Context, to, subject, body string) (domain.Resource, error)
}

// PortalSessionCreator opens a hosted billing portal session (Stripe).
type PortalSessionCreator interface {
	Connector
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (domain.Resource, error)
}

// WhatsAppSender sends WhatsApp messages (Twilio).
// Destination numbers without the "whatsapp:" prefix get it added.
type WhatsAppSender interface {
	Connector
	SendWhatsApp(ctx context.Context, to, body string) (domain.Resource, error)
}
