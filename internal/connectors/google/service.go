package google

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Default API roots. Overrides must keep the same path layout.
const (
	DefaultGmailEndpoint    = "https://gmail.googleapis.com/"
	DefaultCalendarEndpoint = "https://www.googleapis.com/calendar/v3/"
)

// NewGmailService creates a Gmail API service on an authenticated client.
func NewGmailService(ctx context.Context, client *http.Client, endpoint string) (*gmail.Service, error) {
	return gmail.NewService(ctx, serviceOptions(client, endpoint, DefaultGmailEndpoint)...)
}

// NewCalendarService creates a Google Calendar API service on an authenticated client.
func NewCalendarService(ctx context.Context, client *http.Client, endpoint string) (*calendar.Service, error) {
	return calendar.NewService(ctx, serviceOptions(client, endpoint, DefaultCalendarEndpoint)...)
}

func serviceOptions(client *http.Client, endpoint, def string) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if endpoint != "" && endpoint != def {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}
