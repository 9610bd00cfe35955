package twilio

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
)

type client struct {
	http       *http.Client
	baseURL    string
	accountSID string
	authToken  string
}

func (c *client) header() http.Header {
	creds := base64.StdEncoding.EncodeToString([]byte(c.accountSID + ":" + c.authToken))
	return http.Header{"Authorization": {"Basic " + creds}}
}

func (c *client) accountURL(suffix string) string {
	return c.baseURL + "/Accounts/" + url.PathEscape(c.accountSID) + suffix
}

func (c *client) account(ctx context.Context) error {
	_, err := connectors.Do(ctx, c.http, connectors.Request{
		Method: http.MethodGet,
		URL:    c.accountURL(".json"),
		Header: c.header(),
	})
	return err
}

func (c *client) listMessages(ctx context.Context, pageSize int) (map[string]any, error) {
	return connectors.Do(ctx, c.http, connectors.Request{
		Method: http.MethodGet,
		URL:    c.accountURL("/Messages.json"),
		Query:  url.Values{"PageSize": {strconv.Itoa(pageSize)}},
		Header: c.header(),
	})
}

func (c *client) sendMessage(ctx context.Context, from, to, body string) (map[string]any, error) {
	return connectors.Do(ctx, c.http, connectors.Request{
		Method: http.MethodPost,
		URL:    c.accountURL("/Messages.json"),
		Form:   url.Values{"From": {from}, "To": {to}, "Body": {body}},
		Header: c.header(),
	})
}
