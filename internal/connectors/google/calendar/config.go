package calendar

import (
	"github.com/custodia-labs/sercha-connect/internal/connectors/google"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// ID is the registry key of the Google Calendar connector.
const ID = "google_calendar"

// Settings read by the Calendar connector.
const (
	SettingClientID    = "GCAL_CLIENT_ID"
	SettingRedirectURI = "GCAL_REDIRECT_URI"
	SettingAPIBase     = "GCAL_API_BASE"
)

// DefaultRedirectURI is the callback used when GCAL_REDIRECT_URI is unset.
const DefaultRedirectURI = "http://localhost:5000/api/connectors/google_calendar/callback"

// DefaultCalendarID selects the user's primary calendar.
const DefaultCalendarID = "primary"

// DefaultMaxResults is the page size when no limit is given.
const DefaultMaxResults = 10

// Resource types served by Resources and CreateResource.
const (
	ResourceEvents    = "events"
	ResourceCalendars = "calendars"
)

// Scopes requested on the consent screen.
var Scopes = []string{
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.events",
}

// App is the OAuth client description for Google Calendar.
var App = google.App{
	ClientIDKey:        SettingClientID,
	RedirectURIKey:     SettingRedirectURI,
	DefaultRedirectURI: DefaultRedirectURI,
	Scopes:             Scopes,
}

// DefaultConfig returns the registry descriptor for Google Calendar.
func DefaultConfig() domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:               ID,
		Name:             "Google Calendar",
		Description:      "Connect to Google Calendar to view and schedule events and meetings.",
		Icon:             "📅",
		Category:         domain.CategoryProductivity,
		RequiresAuth:     true,
		AuthKind:         domain.AuthOAuth2,
		Status:           domain.StatusNotConnected,
		Enabled:          true,
		DocumentationURL: "https://developers.google.com/calendar/api",
		CredentialKeys:   []string{domain.CredAccessToken, domain.CredRefreshToken},
		SettingKeys: []domain.SettingKey{
			{Key: SettingClientID, Label: "OAuth Client ID", Required: true},
			{Key: SettingRedirectURI, Label: "Redirect URI", Default: DefaultRedirectURI},
		},
	}
}
