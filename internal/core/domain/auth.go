package domain

import "time"

// AuthKind defines how a connector authenticates.
type AuthKind string

const (
	// AuthOAuth2 uses an OAuth 2.0 bearer token.
	AuthOAuth2 AuthKind = "oauth2"
	// AuthAPIKey uses a statically configured key.
	AuthAPIKey AuthKind = "api_key"
	// AuthBasic uses a username/secret pair sent as HTTP Basic auth.
	AuthBasic AuthKind = "basic"
)

// Credential field names shared by connectors.
const (
	CredAccessToken  = "access_token"
	CredRefreshToken = "refresh_token"
	CredAPIKey       = "api_key"
	CredAccountSID   = "account_sid"
	CredAuthToken    = "auth_token"
	CredToken        = "token"
)

// ConnectorAuth holds the credentials for one connector.
// It is owned by the caller; connectors only read it.
type ConnectorAuth struct {
	// Kind is the authentication model of the credentials.
	Kind AuthKind `json:"auth_type"`
	// Credentials maps field names to opaque secret values.
	Credentials map[string]string `json:"credentials"`
	// ExpiresAt is when the credentials stop being valid. Zero means never.
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	// Scopes are the permissions granted to the credentials.
	Scopes []string `json:"scopes,omitempty"`
}

// Credential returns the named credential or an empty string.
// Safe to call on a nil receiver.
func (a *ConnectorAuth) Credential(key string) string {
	if a == nil {
		return ""
	}
	return a.Credentials[key]
}

// HasCredential reports whether the named credential is non-empty.
func (a *ConnectorAuth) HasCredential(key string) bool {
	return a.Credential(key) != ""
}

// IsExpired returns true if the credentials expired before now.
func (a *ConnectorAuth) IsExpired(now time.Time) bool {
	if a == nil || a.ExpiresAt.IsZero() {
		return false
	}
	return now.After(a.ExpiresAt)
}
