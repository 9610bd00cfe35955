package domain

// Resource is a provider-native item such as a message, event or customer.
type Resource map[string]any

// ResourceOptions narrows a resource listing.
type ResourceOptions struct {
	// Limit caps the number of items. Zero selects the connector default.
	Limit int `json:"limit,omitempty"`
	// Query is a provider search expression (Gmail "q").
	Query string `json:"query,omitempty"`
	// CalendarID selects the calendar for event listings.
	CalendarID string `json:"calendar_id,omitempty"`
}

// LimitOr returns the configured limit or def when unset.
func (o ResourceOptions) LimitOr(def int) int {
	if o.Limit <= 0 {
		return def
	}
	return o.Limit
}

// AuthResult is returned by a connector's authorize step.
type AuthResult struct {
	// AuthURL is the provider consent URL for OAuth connectors.
	AuthURL string `json:"auth_url,omitempty"`
	// State is the opaque token the callback handler must round-trip.
	State string `json:"state,omitempty"`
	// Status is "ready" for key-based connectors with valid credentials.
	Status string `json:"status,omitempty"`
	// Message is a human-readable explanation.
	Message string `json:"message,omitempty"`
}

// AuthStatusReady marks a key-based connector whose credentials are configured.
const AuthStatusReady = "ready"

// SyncResult summarises a sync run.
type SyncResult struct {
	Synced int    `json:"synced"`
	Status string `json:"status"`
}

// SyncNotImplemented is returned by connectors without a sync routine.
const SyncNotImplemented = "not_implemented"

// SyncCompleted is returned when a sync run walked every item.
const SyncCompleted = "completed"
