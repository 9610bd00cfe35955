package connectors

import (
	"net/http"

	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
)

// Deps are the collaborators handed to every connector factory.
type Deps struct {
	// Settings supplies client ids, redirect URIs, secrets and base URL overrides.
	Settings driven.Settings
	// HTTPClient sends outbound requests. Nil selects http.DefaultClient.
	HTTPClient *http.Client
}

// Client returns the configured HTTP client or http.DefaultClient.
func (d Deps) Client() *http.Client {
	if d.HTTPClient == nil {
		return http.DefaultClient
	}
	return d.HTTPClient
}
