package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-connect/internal/logger"
)

// Ensure GatewayService implements the interface.
var _ driving.ConnectorGateway = (*GatewayService)(nil)

// DefaultStatusConcurrency caps concurrent probes in StatusAll.
const DefaultStatusConcurrency = 4

// Result messages.
const (
	MessageRevoked       = "Connector access revoked"
	MessageRevokeFailed  = "Failed to revoke"
	MessageTestSucceeded = "Connection successful"
	MessageTestFailed    = "Connection failed"
)

// GatewayService dispatches lifecycle operations to connectors built from
// the registry, handing each instance the auth stored for its id.
type GatewayService struct {
	registry    driving.ConnectorRegistry
	authStore   driven.AuthStore
	history     driven.StatusHistory
	concurrency int
	now         func() time.Time
}

// NewGatewayService creates a gateway over registry. A nil authStore
// means connectors are always built without an auth object.
func NewGatewayService(registry driving.ConnectorRegistry, authStore driven.AuthStore) *GatewayService {
	return &GatewayService{
		registry:    registry,
		authStore:   authStore,
		concurrency: DefaultStatusConcurrency,
		now:         time.Now,
	}
}

// SetStatusHistory enables persisting every status check to history.
func (s *GatewayService) SetStatusHistory(history driven.StatusHistory) {
	s.history = history
}

// SetStatusConcurrency sets the number of concurrent probes in StatusAll.
func (s *GatewayService) SetStatusConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// List returns registered connectors, optionally filtered by category.
func (s *GatewayService) List(category string) []domain.ConnectorConfig {
	return s.registry.ListConnectors(category)
}

// Status recomputes the status of one connector.
func (s *GatewayService) Status(ctx context.Context, id string) (driving.StatusReport, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return driving.StatusReport{}, err
	}
	r := report(c, c.AuthStatus(ctx))
	s.record(ctx, r)
	return r, nil
}

// StatusAll probes every registered connector concurrently and returns
// the reports in registration order.
func (s *GatewayService) StatusAll(ctx context.Context) []driving.StatusReport {
	configs := s.registry.ListAll()
	reports := make([]driving.StatusReport, len(configs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, cfg := range configs {
		g.Go(func() error {
			c, err := s.connector(gctx, cfg.ID)
			if err != nil {
				logger.Warn("status %s: %v", cfg.ID, err)
				reports[i] = driving.StatusReport{
					ConnectorID: cfg.ID,
					Name:        cfg.Name,
					Status:      domain.StatusError,
					Message:     err.Error(),
				}
				return nil
			}
			reports[i] = report(c, c.AuthStatus(gctx))
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range reports {
		s.record(ctx, r)
	}

	return reports
}

// History returns recent status checks for a connector, most recent first.
// It is empty when no history store is configured.
func (s *GatewayService) History(ctx context.Context, id string, limit int) ([]domain.StatusRecord, error) {
	if _, ok := s.registry.Config(id); !ok {
		return nil, fmt.Errorf("connector %q: %w", id, domain.ErrNotFound)
	}
	if s.history == nil {
		return []domain.StatusRecord{}, nil
	}
	records, err := s.history.History(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("status history for %q: %w", id, err)
	}
	return records, nil
}

// Authorize triggers the connector's authorize step.
func (s *GatewayService) Authorize(ctx context.Context, id string) (domain.AuthResult, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return domain.AuthResult{}, err
	}
	return c.Authorize(ctx)
}

// Revoke revokes provider access. Stored auth is deleted only when the
// provider accepted the revocation.
func (s *GatewayService) Revoke(ctx context.Context, id string) (driving.ActionResult, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return driving.ActionResult{}, err
	}
	if !c.Revoke(ctx) {
		return driving.ActionResult{Success: false, Message: MessageRevokeFailed}, nil
	}
	if err := s.DeleteAuth(ctx, id); err != nil {
		return driving.ActionResult{}, err
	}
	return driving.ActionResult{Success: true, Message: MessageRevoked}, nil
}

// Resources lists resources of resourceType.
func (s *GatewayService) Resources(
	ctx context.Context, id, resourceType string, opts domain.ResourceOptions,
) (driving.ResourceList, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return driving.ResourceList{}, err
	}
	items := connectors.Resources(ctx, c, resourceType, opts)
	return driving.ResourceList{Resources: items, Count: len(items)}, nil
}

// Test probes connectivity.
func (s *GatewayService) Test(ctx context.Context, id string) (driving.ActionResult, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return driving.ActionResult{}, err
	}
	if c.TestConnection(ctx) {
		return driving.ActionResult{Success: true, Message: MessageTestSucceeded}, nil
	}
	return driving.ActionResult{Success: false, Message: MessageTestFailed}, nil
}

// Sync runs the connector's sync routine if it has one.
func (s *GatewayService) Sync(ctx context.Context, id string, opts domain.ResourceOptions) (domain.SyncResult, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return domain.SyncResult{}, err
	}
	return connectors.Sync(ctx, c, opts), nil
}

// CreateResource creates a resource through a ResourceCreator connector.
func (s *GatewayService) CreateResource(
	ctx context.Context, id, resourceType string, data map[string]any,
) (domain.Resource, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return nil, err
	}
	return connectors.CreateResource(ctx, c, resourceType, data)
}

// SendEmail sends an email through an EmailSender connector.
func (s *GatewayService) SendEmail(ctx context.Context, id, to, subject, body string) (domain.Resource, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return nil, err
	}
	sender, ok := c.(driven.EmailSender)
	if !ok {
		return nil, unsupported(id, "send email")
	}
	return sender.SendEmail(ctx, to, subject, body)
}

// SendWhatsApp sends a WhatsApp message through a WhatsAppSender connector.
func (s *GatewayService) SendWhatsApp(ctx context.Context, id, to, body string) (domain.Resource, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return nil, err
	}
	sender, ok := c.(driven.WhatsAppSender)
	if !ok {
		return nil, unsupported(id, "send whatsapp")
	}
	return sender.SendWhatsApp(ctx, to, body)
}

// CreatePortalSession opens a billing portal session through a PortalSessionCreator.
func (s *GatewayService) CreatePortalSession(
	ctx context.Context, id, customerID, returnURL string,
) (domain.Resource, error) {
	c, err := s.connector(ctx, id)
	if err != nil {
		return nil, err
	}
	creator, ok := c.(driven.PortalSessionCreator)
	if !ok {
		return nil, unsupported(id, "create portal session")
	}
	return creator.CreatePortalSession(ctx, customerID, returnURL)
}

// SaveAuth stores credentials for a registered connector.
func (s *GatewayService) SaveAuth(ctx context.Context, id string, auth domain.ConnectorAuth) error {
	if _, ok := s.registry.Config(id); !ok {
		return fmt.Errorf("connector %q: %w", id, domain.ErrNotFound)
	}
	if s.authStore == nil {
		return fmt.Errorf("save auth for %q: no auth store configured: %w", id, domain.ErrUnsupported)
	}
	if len(auth.Credentials) == 0 {
		return fmt.Errorf("save auth for %q: no credentials: %w", id, domain.ErrInvalidInput)
	}
	for key, value := range auth.Credentials {
		if strings.TrimSpace(key) == "" || value == "" {
			return fmt.Errorf("save auth for %q: empty credential %q: %w", id, key, domain.ErrInvalidInput)
		}
	}
	if err := s.authStore.Save(ctx, id, auth); err != nil {
		return fmt.Errorf("save auth for %q: %w", id, err)
	}
	logger.Info("stored credentials for %s", id)
	return nil
}

// DeleteAuth forgets stored credentials. It is a no-op without an auth store.
func (s *GatewayService) DeleteAuth(ctx context.Context, id string) error {
	if s.authStore == nil {
		return nil
	}
	if err := s.authStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete auth for %q: %w", id, err)
	}
	return nil
}

// connector builds a connector instance for id with its stored auth.
func (s *GatewayService) connector(ctx context.Context, id string) (driven.Connector, error) {
	if _, ok := s.registry.Config(id); !ok {
		return nil, fmt.Errorf("connector %q: %w", id, domain.ErrNotFound)
	}

	var auth *domain.ConnectorAuth
	if s.authStore != nil {
		stored, err := s.authStore.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load auth for %q: %w", id, err)
		}
		auth = stored
	}

	c, ok := s.registry.GetConnector(id, auth)
	if !ok {
		return nil, fmt.Errorf("connector %q: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// record appends r to the history store. Failures are logged only.
func (s *GatewayService) record(ctx context.Context, r driving.StatusReport) {
	if s.history == nil {
		return
	}
	rec := domain.StatusRecord{
		ConnectorID: r.ConnectorID,
		Status:      r.Status,
		Message:     r.Message,
		CheckedAt:   s.now().UTC(),
	}
	if err := s.history.Record(ctx, rec); err != nil {
		logger.Warn("record status for %s: %v", r.ConnectorID, err)
	}
}

func report(c driven.Connector, status domain.ConnectorStatus) driving.StatusReport {
	cfg := c.Config()
	return driving.StatusReport{
		ConnectorID: cfg.ID,
		Name:        cfg.Name,
		Status:      status,
		Message:     connectors.StatusMessage(status),
	}
}

func unsupported(id, op string) error {
	return fmt.Errorf("connector %q cannot %s: %w", id, op, domain.ErrUnsupported)
}
