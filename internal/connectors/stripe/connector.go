// Package stripe implements the Stripe billing connector over the Stripe REST API.
package stripe

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.Connector            = (*Connector)(nil)
	_ driven.ResourceLister       = (*Connector)(nil)
	_ driven.PortalSessionCreator = (*Connector)(nil)
)

// Connector reads customers and subscriptions and opens billing portal sessions.
// The secret key comes from the auth object when one is supplied, otherwise
// from the STRIPE_SECRET_KEY setting.
type Connector struct {
	cfg  domain.ConnectorConfig
	auth *domain.ConnectorAuth
	deps connectors.Deps
}

// NewFactory returns the factory registered for Stripe.
func NewFactory(deps connectors.Deps) driven.ConnectorFactory {
	return func(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) driven.Connector {
		return New(cfg, auth, deps)
	}
}

// New creates a Stripe connector bound to cfg and auth.
func New(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth, deps connectors.Deps) *Connector {
	return &Connector{cfg: cfg, auth: auth, deps: deps}
}

// Config returns the connector config.
func (c *Connector) Config() domain.ConnectorConfig {
	return c.cfg
}

// secretKey resolves the key on every call so setting changes apply immediately.
func (c *Connector) secretKey() string {
	if key := strings.TrimSpace(c.auth.Credential(domain.CredAPIKey)); key != "" {
		return key
	}
	return connectors.Setting(c.deps.Settings, SettingSecretKey, "")
}

func (c *Connector) client() *client {
	return &client{
		http:    c.deps.Client(),
		baseURL: connectors.BaseURL(c.deps.Settings, SettingAPIBase, DefaultAPIBase),
		key:     c.secretKey(),
	}
}

// Authorize validates the configured secret key. Stripe keys are created in
// the Stripe dashboard, so nothing is minted here.
func (c *Connector) Authorize(_ context.Context) (domain.AuthResult, error) {
	key := c.secretKey()
	if key == "" {
		return domain.AuthResult{}, fmt.Errorf("%s: %s is not set: %w", ID, SettingSecretKey, domain.ErrAuthRequired)
	}
	if !strings.HasPrefix(key, SecretKeyPrefix) {
		return domain.AuthResult{}, fmt.Errorf("%s: secret key must start with %q: %w", ID, SecretKeyPrefix, domain.ErrAuthInvalid)
	}
	return domain.AuthResult{
		Status:  domain.AuthStatusReady,
		Message: "Stripe API key configured",
	}, nil
}

// AuthStatus applies the status priority chain.
func (c *Connector) AuthStatus(ctx context.Context) domain.ConnectorStatus {
	return connectors.ResolveStatus(ctx, ID, c.secretKey() != "", c.auth, c.TestConnection)
}

// Revoke always succeeds: keys are managed in the Stripe dashboard.
func (c *Connector) Revoke(_ context.Context) bool {
	return true
}

// TestConnection retrieves the account balance.
func (c *Connector) TestConnection(ctx context.Context) bool {
	if c.secretKey() == "" {
		return false
	}
	return connectors.Attempt(ID, "test", func() error {
		return c.client().balance(ctx)
	})
}

// Resources lists customers or subscriptions.
func (c *Connector) Resources(ctx context.Context, resourceType string, opts domain.ResourceOptions) []domain.Resource {
	if c.secretKey() == "" {
		return []domain.Resource{}
	}

	var path string
	switch resourceType {
	case ResourceCustomers:
		path = "/customers"
	case ResourceSubscriptions:
		path = "/subscriptions"
	default:
		return []domain.Resource{}
	}

	return connectors.AttemptList(ID, "list_"+resourceType, func() ([]domain.Resource, error) {
		body, err := c.client().list(ctx, path, opts.LimitOr(DefaultLimit))
		if err != nil {
			return nil, err
		}
		return connectors.Items(body, "data"), nil
	})
}

// CreatePortalSession opens a Customer Portal session for customerID.
func (c *Connector) CreatePortalSession(ctx context.Context, customerID, returnURL string) (domain.Resource, error) {
	if c.secretKey() == "" {
		return nil, fmt.Errorf("%s: %w", ID, domain.ErrAuthRequired)
	}
	if customerID == "" {
		return nil, fmt.Errorf("%s: customer id is empty: %w", ID, domain.ErrInvalidInput)
	}

	body, err := c.client().createPortalSession(ctx, customerID, returnURL)
	if err := connectors.Observe(ID, "create_portal_session", err); err != nil {
		return nil, fmt.Errorf("%s: creating portal session: %w", ID, err)
	}
	return domain.Resource(body), nil
}
