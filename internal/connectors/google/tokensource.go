package google

import (
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// authTokenSource adapts a ConnectorAuth to oauth2.TokenSource.
// The auth object is read, never refreshed or mutated.
type authTokenSource struct {
	auth *domain.ConnectorAuth
}

// NewTokenSource creates an oauth2.TokenSource from a ConnectorAuth.
// The returned TokenSource can be used with oauth2.Transport when
// creating Google API services.
func NewTokenSource(auth *domain.ConnectorAuth) oauth2.TokenSource {
	return &authTokenSource{auth: auth}
}

// Token implements oauth2.TokenSource interface.
func (t *authTokenSource) Token() (*oauth2.Token, error) {
	accessToken := t.auth.Credential(domain.CredAccessToken)
	if accessToken == "" {
		return nil, domain.ErrAuthRequired
	}

	return &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: t.auth.Credential(domain.CredRefreshToken),
		TokenType:    "Bearer",
		Expiry:       t.auth.ExpiresAt,
	}, nil
}
