// Package twilio implements the WhatsApp messaging connector over the Twilio REST API.
package twilio

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
	_ driven.Connector      = (*Connector)(nil)
	_ driven.ResourceLister = (*Connector)(nil)
	_ driven.WhatsAppSender = (*Connector)(nil)
)

// Connector lists and sends WhatsApp messages with HTTP basic auth.
type Connector struct {
	cfg  domain.ConnectorConfig
	auth *domain.ConnectorAuth
	deps connectors.Deps
}

// NewFactory returns the factory registered for Twilio WhatsApp.
func NewFactory(deps connectors.Deps) driven.ConnectorFactory {
	return func(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) driven.Connector {
		return New(cfg, auth, deps)
	}
}

// New creates a Twilio connector bound to cfg and auth.
func New(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth, deps connectors.Deps) *Connector {
	return &Connector{cfg: cfg, auth: auth, deps: deps}
}

// Config returns the connector config.
func (c *Connector) Config() domain.ConnectorConfig {
	return c.cfg
}

// credentials returns the account SID and auth token, preferring the
// stored auth pair over settings.
func (c *Connector) credentials() (sid, token string) {
	sid = strings.TrimSpace(c.auth.Credential(domain.CredAccountSID))
	token = strings.TrimSpace(c.auth.Credential(domain.CredAuthToken))
	if sid != "" && token != "" {
		return sid, token
	}
	return connectors.Setting(c.deps.Settings, SettingAccountSID, ""),
		connectors.Setting(c.deps.Settings, SettingAuthToken, "")
}

func (c *Connector) hasCredentials() bool {
	sid, token := c.credentials()
	return sid != "" && token != ""
}

func (c *Connector) client() *client {
	sid, token := c.credentials()
	return &client{
		http:       c.deps.Client(),
		baseURL:    connectors.BaseURL(c.deps.Settings, SettingAPIBase, DefaultAPIBase),
		accountSID: sid,
		authToken:  token,
	}
}

// Authorize checks that both halves of the credential pair are configured.
func (c *Connector) Authorize(_ context.Context) (domain.AuthResult, error) {
	if !c.hasCredentials() {
		return domain.AuthResult{}, fmt.Errorf("%s: %s and %s must be set: %w",
			ID, SettingAccountSID, SettingAuthToken, domain.ErrAuthRequired)
	}
	return domain.AuthResult{
		Status:  domain.AuthStatusReady,
		Message: "Twilio credentials configured",
	}, nil
}

// AuthStatus applies the status priority chain.
func (c *Connector) AuthStatus(ctx context.Context) domain.ConnectorStatus {
	return connectors.ResolveStatus(ctx, ID, c.hasCredentials(), c.auth, c.TestConnection)
}

// Revoke always succeeds: auth tokens are rotated in the Twilio console.
func (c *Connector) Revoke(_ context.Context) bool {
	return true
}

// TestConnection fetches the account resource.
func (c *Connector) TestConnection(ctx context.Context) bool {
	if !c.hasCredentials() {
		return false
	}
	return connectors.Attempt(ID, "test", func() error {
		return c.client().account(ctx)
	})
}

// Resources lists recent messages on the account.
func (c *Connector) Resources(ctx context.Context, resourceType string, opts domain.ResourceOptions) []domain.Resource {
	if resourceType != ResourceMessages || !c.hasCredentials() {
		return []domain.Resource{}
	}
	return connectors.AttemptList(ID, "list_messages", func() ([]domain.Resource, error) {
		body, err := c.client().listMessages(ctx, opts.LimitOr(DefaultPageSize))
		if err != nil {
			return nil, err
		}
		return connectors.Items(body, "messages"), nil
	})
}

// SendWhatsApp sends body to the number to. Both the sender and the
// recipient are given the whatsapp: prefix when it is missing.
func (c *Connector) SendWhatsApp(ctx context.Context, to, body string) (domain.Resource, error) {
	if !c.hasCredentials() {
		return nil, fmt.Errorf("%s: %w", ID, domain.ErrAuthRequired)
	}
	if strings.TrimSpace(to) == "" {
		return nil, fmt.Errorf("%s: recipient is empty: %w", ID, domain.ErrInvalidInput)
	}

	from := connectors.Setting(c.deps.Settings, SettingWhatsAppFrom, DefaultWhatsAppFrom)
	msg, err := c.client().sendMessage(ctx, withPrefix(from), withPrefix(to), body)
	if err := connectors.Observe(ID, "send_whatsapp", err); err != nil {
		return nil, fmt.Errorf("%s: sending message: %w", ID, err)
	}
	return domain.Resource(msg), nil
}

func withPrefix(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, WhatsAppPrefix) {
		return addr
	}
	return WhatsAppPrefix + addr
}
