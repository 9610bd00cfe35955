package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/custodia-labs/sercha-connect/internal/connectors"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

const (
	// AuthURL is Google's OAuth 2.0 consent endpoint.
	AuthURL = "https://accounts.google.com/o/oauth2/v2/auth"

	// DefaultRevokeURL is Google's token revocation endpoint.
	DefaultRevokeURL = "https://oauth2.googleapis.com/revoke"

	// SettingRevokeURL overrides DefaultRevokeURL.
	SettingRevokeURL = "GOOGLE_REVOKE_URL"
)

// App describes the OAuth client a Google connector authorizes with.
type App struct {
	// ClientIDKey is the setting holding the OAuth client id.
	ClientIDKey string
	// RedirectURIKey is the setting holding the callback URL.
	RedirectURIKey string
	// DefaultRedirectURI is used when RedirectURIKey is unset.
	DefaultRedirectURI string
	// Scopes are requested on the consent screen.
	Scopes []string
}

// OAuthBase implements the lifecycle shared by Google connectors.
// Embedders supply the probe used by TestConnection.
type OAuthBase struct {
	cfg   domain.ConnectorConfig
	auth  *domain.ConnectorAuth
	deps  connectors.Deps
	app   App
	probe func(ctx context.Context) error
}

// NewOAuthBase creates the shared lifecycle. probe must issue one
// lightweight authenticated call and return its error.
func NewOAuthBase(
	cfg domain.ConnectorConfig,
	auth *domain.ConnectorAuth,
	deps connectors.Deps,
	app App,
	probe func(ctx context.Context) error,
) *OAuthBase {
	return &OAuthBase{cfg: cfg, auth: auth, deps: deps, app: app, probe: probe}
}

// Config returns the connector config.
func (b *OAuthBase) Config() domain.ConnectorConfig {
	return b.cfg
}

// Auth returns the borrowed auth object, which may be nil.
func (b *OAuthBase) Auth() *domain.ConnectorAuth {
	return b.auth
}

// Deps returns the connector dependencies.
func (b *OAuthBase) Deps() connectors.Deps {
	return b.deps
}

// HasToken reports whether an access token is present.
func (b *OAuthBase) HasToken() bool {
	return b.auth.HasCredential(domain.CredAccessToken)
}

// OAuthConfig builds the oauth2 client configuration from current settings.
func (b *OAuthBase) OAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:    connectors.Setting(b.deps.Settings, b.app.ClientIDKey, ""),
		RedirectURL: connectors.Setting(b.deps.Settings, b.app.RedirectURIKey, b.app.DefaultRedirectURI),
		Scopes:      b.app.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: googleoauth.Endpoint.TokenURL,
		},
	}
}

// Authorize returns the consent URL and a fresh state token.
// The code exchange happens in an external callback handler.
func (b *OAuthBase) Authorize(_ context.Context) (domain.AuthResult, error) {
	oc := b.OAuthConfig()
	if oc.ClientID == "" {
		return domain.AuthResult{}, fmt.Errorf("%s: %s is not set: %w", b.cfg.ID, b.app.ClientIDKey, domain.ErrAuthRequired)
	}

	state, err := connectors.NewState()
	if err != nil {
		return domain.AuthResult{}, fmt.Errorf("%s: generating state: %w", b.cfg.ID, err)
	}

	return domain.AuthResult{
		AuthURL: oc.AuthCodeURL(state, oauth2.AccessTypeOffline),
		State:   state,
		Message: "Open the URL to grant access to " + b.cfg.Name,
	}, nil
}

// AuthStatus applies the status priority chain.
func (b *OAuthBase) AuthStatus(ctx context.Context) domain.ConnectorStatus {
	return connectors.ResolveStatus(ctx, b.cfg.ID, b.HasToken(), b.auth, b.TestConnection)
}

// Revoke revokes the access token at Google.
func (b *OAuthBase) Revoke(ctx context.Context) bool {
	if !b.HasToken() {
		return true
	}
	return connectors.Attempt(b.cfg.ID, "revoke", func() error {
		_, err := connectors.Do(ctx, b.deps.Client(), connectors.Request{
			Method: http.MethodPost,
			URL:    connectors.BaseURL(b.deps.Settings, SettingRevokeURL, DefaultRevokeURL),
			Form:   url.Values{"token": {b.auth.Credential(domain.CredAccessToken)}},
		})
		return err
	})
}

// TestConnection runs the connector's probe.
func (b *OAuthBase) TestConnection(ctx context.Context) bool {
	if !b.HasToken() {
		return false
	}
	return connectors.Attempt(b.cfg.ID, "test", func() error {
		return WrapError(b.probe(ctx))
	})
}

// AuthedClient returns an HTTP client that sends the bearer token and
// shares the base client's transport and timeout.
func (b *OAuthBase) AuthedClient() *http.Client {
	base := b.deps.Client()
	return &http.Client{
		Timeout: base.Timeout,
		Transport: &oauth2.Transport{
			Source: NewTokenSource(b.auth),
			Base:   base.Transport,
		},
	}
}
