// Package connectortest provides an in-process connector and a ready
// gateway for testing the driving adapters without provider servers.
package connectortest

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driven/settings/memory"
	storage "github.com/custodia-labs/sercha-connect/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/core/services"
)

// Registered ids.
const (
	FullID = "fake"
	BareID = "bare"
)

// Credential values that steer the fake connector.
const (
	KeyGood = "good"
	KeyBad  = "bad"
	// KeySticky makes Revoke fail.
	KeySticky = "sticky"
)

// ResourceThings is the only resource type the fake lists.
const ResourceThings = "things"

// SettingClientID is the one setting the fake declares.
const SettingClientID = "FAKE_CLIENT_ID"

// Config returns the fake connector config.
func Config() domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:             FullID,
		Name:           "Fake",
		Description:    "In-process connector for tests.",
		Icon:           "*",
		Category:       domain.CategoryBilling,
		RequiresAuth:   true,
		AuthKind:       domain.AuthAPIKey,
		Status:         domain.StatusNotConnected,
		Enabled:        true,
		CredentialKeys: []string{domain.CredAPIKey},
		SettingKeys: []domain.SettingKey{
			{Key: SettingClientID, Label: "Client ID", Required: true},
		},
	}
}

// BareConfig returns the config of the connector without optional capabilities.
func BareConfig() domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:       BareID,
		Name:     "Bare",
		Category: domain.CategoryProductivity,
		AuthKind: domain.AuthAPIKey,
		Status:   domain.StatusNotConnected,
		Enabled:  true,
	}
}

// Connector implements driven.Connector, every optional capability and
// every per-type extra.
type Connector struct {
	cfg  domain.ConnectorConfig
	auth *domain.ConnectorAuth
}

// Factory builds a Connector.
func Factory(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) driven.Connector {
	return &Connector{cfg: cfg, auth: auth}
}

func (c *Connector) key() string { return c.auth.Credential(domain.CredAPIKey) }

// Config returns the connector config.
func (c *Connector) Config() domain.ConnectorConfig { return c.cfg }

// Authorize succeeds when an api key is present.
func (c *Connector) Authorize(_ context.Context) (domain.AuthResult, error) {
	if c.key() == "" {
		return domain.AuthResult{}, fmt.Errorf("fake: no api key: %w", domain.ErrAuthRequired)
	}
	return domain.AuthResult{Status: domain.AuthStatusReady, Message: "Fake key configured"}, nil
}

// AuthStatus maps the api key to a status.
func (c *Connector) AuthStatus(ctx context.Context) domain.ConnectorStatus {
	switch {
	case c.key() == "":
		return domain.StatusNotConnected
	case c.auth.IsExpired(time.Now()):
		return domain.StatusExpired
	case !c.TestConnection(ctx):
		return domain.StatusError
	}
	return domain.StatusConnected
}

// Revoke fails only for KeySticky.
func (c *Connector) Revoke(_ context.Context) bool { return c.key() != KeySticky }

// TestConnection succeeds for KeyGood and KeySticky.
func (c *Connector) TestConnection(_ context.Context) bool {
	return c.key() == KeyGood || c.key() == KeySticky
}

// Resources returns LimitOr(3) numbered items for ResourceThings.
func (c *Connector) Resources(_ context.Context, resourceType string, opts domain.ResourceOptions) []domain.Resource {
	if resourceType != ResourceThings || !c.TestConnection(context.Background()) {
		return []domain.Resource{}
	}
	n := opts.LimitOr(3)
	items := make([]domain.Resource, 0, n)
	for i := range n {
		items = append(items, domain.Resource{"id": fmt.Sprintf("thing_%d", i), "query": opts.Query})
	}
	return items
}

// CreateResource echoes data back with an id.
func (c *Connector) CreateResource(_ context.Context, resourceType string, data map[string]any) (domain.Resource, error) {
	if resourceType != ResourceThings {
		return nil, fmt.Errorf("fake: cannot create %q: %w", resourceType, domain.ErrInvalidInput)
	}
	r := domain.Resource{"id": "thing_new"}
	for k, v := range data {
		r[k] = v
	}
	return r, nil
}

// Sync reports a fixed count.
func (c *Connector) Sync(_ context.Context, _ domain.ResourceOptions) domain.SyncResult {
	if c.key() == "" {
		return domain.SyncResult{Synced: 0, Status: string(domain.StatusNotConnected)}
	}
	return domain.SyncResult{Synced: 3, Status: domain.SyncCompleted}
}

// SendEmail echoes the message.
func (c *Connector) SendEmail(_ context.Context, to, subject, _ string) (domain.Resource, error) {
	if to == "" {
		return nil, fmt.Errorf("fake: recipient required: %w", domain.ErrInvalidInput)
	}
	return domain.Resource{"id": "msg_1", "to": to, "subject": subject}, nil
}

// SendWhatsApp echoes the message.
func (c *Connector) SendWhatsApp(_ context.Context, to, body string) (domain.Resource, error) {
	if to == "" {
		return nil, fmt.Errorf("fake: recipient required: %w", domain.ErrInvalidInput)
	}
	return domain.Resource{"sid": "SM1", "to": "whatsapp:" + to, "body": body}, nil
}

// CreatePortalSession returns a fake portal URL.
func (c *Connector) CreatePortalSession(_ context.Context, customerID, returnURL string) (domain.Resource, error) {
	if customerID == "" {
		return nil, fmt.Errorf("fake: customer required: %w", domain.ErrInvalidInput)
	}
	return domain.Resource{"url": "https://portal.test/" + customerID, "return_url": returnURL}, nil
}

// Bare implements only the mandatory contract.
type Bare struct {
	cfg domain.ConnectorConfig
}

// BareFactory builds a Bare connector.
func BareFactory(cfg domain.ConnectorConfig, _ *domain.ConnectorAuth) driven.Connector {
	return &Bare{cfg: cfg}
}

// Config returns the connector config.
func (b *Bare) Config() domain.ConnectorConfig { return b.cfg }

// Authorize always reports ready.
func (b *Bare) Authorize(_ context.Context) (domain.AuthResult, error) {
	return domain.AuthResult{Status: domain.AuthStatusReady}, nil
}

// AuthStatus is always connected.
func (b *Bare) AuthStatus(_ context.Context) domain.ConnectorStatus { return domain.StatusConnected }

// Revoke always succeeds.
func (b *Bare) Revoke(_ context.Context) bool { return true }

// TestConnection always succeeds.
func (b *Bare) TestConnection(_ context.Context) bool { return true }

// Env bundles a gateway over the fake connectors with its stores.
type Env struct {
	Registry *services.ConnectorRegistry
	Gateway  *services.GatewayService
	Settings *services.SettingsService
	Auth     *storage.AuthStore
	History  *storage.StatusHistory
	Values   *memory.Store
}

// NewEnv registers the fake and bare connectors and wires a gateway with
// in-memory stores.
func NewEnv() *Env {
	reg := services.NewConnectorRegistry()
	reg.Register(FullID, Factory, Config())
	reg.Register(BareID, BareFactory, BareConfig())

	auth := storage.NewAuthStore()
	history := storage.NewStatusHistory()
	values := memory.NewStore(nil)

	gw := services.NewGatewayService(reg, auth)
	gw.SetStatusHistory(history)

	return &Env{
		Registry: reg,
		Gateway:  gw,
		Settings: services.NewSettingsService(reg, values, values),
		Auth:     auth,
		History:  history,
		Values:   values,
	}
}

// SaveKey stores an api key for the fake connector.
func (e *Env) SaveKey(key string) error {
	return e.Auth.Save(context.Background(), FullID, domain.ConnectorAuth{
		Kind:        domain.AuthAPIKey,
		Credentials: map[string]string{domain.CredAPIKey: key},
	})
}
