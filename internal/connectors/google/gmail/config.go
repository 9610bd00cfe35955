package gmail

import (
	"github.com/custodia-labs/sercha-connect/internal/connectors/google"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// ID is the registry key of the Gmail connector.
const ID = "gmail"

// Settings read by the Gmail connector.
const (
	SettingClientID    = "GMAIL_CLIENT_ID"
	SettingRedirectURI = "GMAIL_REDIRECT_URI"
	SettingAPIBase     = "GMAIL_API_BASE"
)

// DefaultRedirectURI is the callback used when GMAIL_REDIRECT_URI is unset.
const DefaultRedirectURI = "http://localhost:5000/api/connectors/gmail/callback"

// DefaultMaxResults is the page size when no limit is given.
const DefaultMaxResults = 10

// Resource types served by Resources.
const (
	ResourceMessages = "messages"
	ResourceLabels   = "labels"
)

// Scopes requested on the consent screen.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
}

// App is the OAuth client description for Gmail.
var App = google.App{
	ClientIDKey:        SettingClientID,
	RedirectURIKey:     SettingRedirectURI,
	DefaultRedirectURI: DefaultRedirectURI,
	Scopes:             Scopes,
}

// DefaultConfig returns the registry descriptor for Gmail.
func DefaultConfig() domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:               ID,
		Name:             "Gmail",
		Description:      "Connect to Gmail to manage emails, send messages, and organize your inbox.",
		Icon:             "📧",
		Category:         domain.CategoryCommunication,
		RequiresAuth:     true,
		AuthKind:         domain.AuthOAuth2,
		Status:           domain.StatusNotConnected,
		Enabled:          true,
		DocumentationURL: "https://developers.google.com/gmail/api",
		CredentialKeys:   []string{domain.CredAccessToken, domain.CredRefreshToken},
		SettingKeys: []domain.SettingKey{
			{Key: SettingClientID, Label: "OAuth Client ID", Required: true},
			{Key: SettingRedirectURI, Label: "Redirect URI", Default: DefaultRedirectURI},
		},
	}
}
