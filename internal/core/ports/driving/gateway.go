package driving

import (
	"context"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// StatusReport is the outcome of a status check.
type StatusReport struct {
	ConnectorID string                 `json:"connector_id"`
	Name        string                 `json:"connector_name,omitempty"`
	Status      domain.ConnectorStatus `json:"status"`
	Message     string                 `json:"message"`
}

// ActionResult is the outcome of revoke and test.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ResourceList is a page of provider resources.
type ResourceList struct {
	Resources []domain.Resource `json:"resources"`
	Count     int               `json:"count"`
}

// ConnectorGateway is the dispatch surface shared by every driving adapter.
// Unknown connector ids fail with domain.ErrNotFound.
type ConnectorGateway interface {
	// List returns registered connectors, optionally filtered by category.
	List(category string) []domain.ConnectorConfig

	// Status recomputes the status of one connector.
	Status(ctx context.Context, id string) (StatusReport, error)

	// StatusAll recomputes the status of every registered connector.
	StatusAll(ctx context.Context) []StatusReport

	// History returns recent status checks, most recent first.
	History(ctx context.Context, id string, limit int) ([]domain.StatusRecord, error)

	// Authorize triggers the connector's authorize step.
	Authorize(ctx context.Context, id string) (domain.AuthResult, error)

	// Revoke revokes provider access and forgets stored auth on success.
	Revoke(ctx context.Context, id string) (ActionResult, error)

	// Resources lists resources of resourceType.
	Resources(ctx context.Context, id, resourceType string, opts domain.ResourceOptions) (ResourceList, error)

	// Test probes connectivity.
	Test(ctx context.Context, id string) (ActionResult, error)

	// Sync runs the connector's sync routine if it has one.
	Sync(ctx context.Context, id string, opts domain.ResourceOptions) (domain.SyncResult, error)

	// CreateResource creates a resource. Fails with domain.ErrUnsupported
	// when the connector has no write path.
	CreateResource(ctx context.Context, id, resourceType string, data map[string]any) (domain.Resource, error)

	// SendEmail sends an email through an EmailSender connector.
	SendEmail(ctx context.Context, id, to, subject, body string) (domain.Resource, error)

	// SendWhatsApp sends a WhatsApp message through a WhatsAppSender connector.
	SendWhatsApp(ctx context.Context, id, to, body string) (domain.Resource, error)

	// CreatePortalSession opens a billing portal session through a PortalSessionCreator.
	CreatePortalSession(ctx context.Context, id, customerID, returnURL string) (domain.Resource, error)

	// SaveAuth stores credentials for a connector.
	SaveAuth(ctx context.Context, id string, auth domain.ConnectorAuth) error

	// DeleteAuth forgets stored credentials for a connector.
	DeleteAuth(ctx context.Context, id string) error
}
