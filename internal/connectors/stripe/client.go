package stripe

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
)

// client wraps the Stripe REST endpoints used by the connector.
type client struct {
	http    *http.Client
	baseURL string
	key     string
}

func (c *client) header() http.Header {
	return http.Header{"Authorization": {"Bearer " + c.key}}
}

func (c *client) get(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	return connectors.Do(ctx, c.http, connectors.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + path,
		Query:  query,
		Header: c.header(),
	})
}

// post sends a form request under a fresh idempotency key.
func (c *client) post(ctx context.Context, path string, form url.Values) (map[string]any, error) {
	h := c.header()
	h.Set("Idempotency-Key", uuid.NewString())
	return connectors.Do(ctx, c.http, connectors.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + path,
		Form:   form,
		Header: h,
	})
}

func (c *client) balance(ctx context.Context) error {
	_, err := c.get(ctx, "/balance", nil)
	return err
}

func (c *client) list(ctx context.Context, path string, limit int) (map[string]any, error) {
	return c.get(ctx, path, url.Values{"limit": {strconv.Itoa(limit)}})
}

func (c *client) createPortalSession(ctx context.Context, customerID, returnURL string) (map[string]any, error) {
	return c.post(ctx, "/billing_portal/sessions", url.Values{
		"customer":   {customerID},
		"return_url": {returnURL},
	})
}
