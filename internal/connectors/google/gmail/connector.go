// Package gmail implements the Gmail connector on the Gmail API v1 client.
package gmail

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/connectors/google"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Verify interface compliance.
var (
	_ driven.Connector      = (*Connector)(nil)
	_ driven.ResourceLister = (*Connector)(nil)
	_ driven.EmailSender    = (*Connector)(nil)
)

// Connector reads and sends mail through Gmail.
type Connector struct {
	*google.OAuthBase
}

// NewFactory returns the factory registered for Gmail.
func NewFactory(deps connectors.Deps) driven.ConnectorFactory {
	return func(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth) driven.Connector {
		return New(cfg, auth, deps)
	}
}

// New creates a Gmail connector bound to cfg and auth.
func New(cfg domain.ConnectorConfig, auth *domain.ConnectorAuth, deps connectors.Deps) *Connector {
	c := &Connector{}
	c.OAuthBase = google.NewOAuthBase(cfg, auth, deps, App, c.probe)
	return c
}

func (c *Connector) service(ctx context.Context) (*gmail.Service, error) {
	endpoint := connectors.Setting(c.Deps().Settings, SettingAPIBase, google.DefaultGmailEndpoint)
	return google.NewGmailService(ctx, c.AuthedClient(), endpoint)
}

// probe fetches the mailbox profile.
func (c *Connector) probe(ctx context.Context) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	_, err = svc.Users.GetProfile("me").Context(ctx).Do()
	return err
}

// Resources lists messages or labels.
func (c *Connector) Resources(ctx context.Context, resourceType string, opts domain.ResourceOptions) []domain.Resource {
	if !c.HasToken() {
		return []domain.Resource{}
	}
	switch resourceType {
	case ResourceMessages:
		return connectors.AttemptList(ID, "list_messages", func() ([]domain.Resource, error) {
			return c.listMessages(ctx, opts)
		})
	case ResourceLabels:
		return connectors.AttemptList(ID, "list_labels", func() ([]domain.Resource, error) {
			return c.listLabels(ctx)
		})
	default:
		return []domain.Resource{}
	}
}

func (c *Connector) listMessages(ctx context.Context, opts domain.ResourceOptions) ([]domain.Resource, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	call := svc.Users.Messages.List("me").MaxResults(int64(opts.LimitOr(DefaultMaxResults)))
	if opts.Query != "" {
		call = call.Q(opts.Query)
	}
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}

	items := make([]domain.Resource, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		res, err := connectors.ToResource(m)
		if err != nil {
			return nil, err
		}
		res["web_url"] = webURL(m.Id)
		items = append(items, res)
	}
	return items, nil
}

func (c *Connector) listLabels(ctx context.Context) ([]domain.Resource, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Users.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, google.WrapError(err)
	}

	items := make([]domain.Resource, 0, len(resp.Labels))
	for _, l := range resp.Labels {
		res, err := connectors.ToResource(l)
		if err != nil {
			return nil, err
		}
		items = append(items, res)
	}
	return items, nil
}

// SendEmail sends a plain-text email from the authorised mailbox.
func (c *Connector) SendEmail(ctx context.Context, to, subject, body string) (domain.Resource, error) {
	if !c.HasToken() {
		return nil, fmt.Errorf("%s: %w", ID, domain.ErrAuthRequired)
	}
	if to == "" {
		return nil, fmt.Errorf("%s: recipient is empty: %w", ID, domain.ErrInvalidInput)
	}

	raw, err := buildRawMessage(to, subject, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", ID, err, domain.ErrInvalidInput)
	}

	svc, err := c.service(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ID, err)
	}
	sent, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err := connectors.Observe(ID, "send_message", google.WrapError(err)); err != nil {
		return nil, fmt.Errorf("%s: sending message: %w", ID, err)
	}
	return connectors.ToResource(sent)
}
