package domain

// ConnectorStatus is the health of a connector, recomputed on every check.
type ConnectorStatus string

const (
	// StatusNotConnected means no credentials are present.
	StatusNotConnected ConnectorStatus = "not_connected"
	// StatusConnected means the last probe succeeded.
	StatusConnected ConnectorStatus = "connected"
	// StatusError means credentials are present but the probe failed.
	StatusError ConnectorStatus = "error"
	// StatusExpired means credentials are present but past their expiry.
	StatusExpired ConnectorStatus = "expired"
)

// Valid reports whether s is one of the known statuses.
func (s ConnectorStatus) Valid() bool {
	switch s {
	case StatusNotConnected, StatusConnected, StatusError, StatusExpired:
		return true
	}
	return false
}

// Connector categories used for filtering.
const (
	CategoryCommunication = "communication"
	CategoryProductivity  = "productivity"
	CategoryBilling       = "billing"
	CategoryDevelopment   = "development"
)

// ConnectorConfig is the static descriptor of a registered connector.
type ConnectorConfig struct {
	// ID is the unique registry key (e.g., "gmail", "stripe").
	ID string `json:"connector_id"`
	// Name is the human-readable display name.
	Name string `json:"connector_name"`
	// Description provides a brief explanation of the connector.
	Description string `json:"description"`
	// Icon is a single glyph shown next to the name.
	Icon string `json:"icon"`
	// Category is a free-form tag used for filtering.
	Category string `json:"category"`
	// RequiresAuth indicates the connector needs credentials.
	RequiresAuth bool `json:"requires_auth"`
	// AuthKind is how the connector authenticates.
	AuthKind AuthKind `json:"auth_type"`
	// Status is an informational snapshot, not authoritative.
	Status ConnectorStatus `json:"status"`
	// Enabled indicates the connector is offered to callers.
	Enabled bool `json:"enabled"`
	// DocumentationURL links to the provider's API docs.
	DocumentationURL string `json:"documentation_url,omitempty"`
	// CredentialKeys lists the auth credential fields this connector reads.
	CredentialKeys []string `json:"credential_keys,omitempty"`
	// SettingKeys lists the settings this connector reads.
	SettingKeys []SettingKey `json:"setting_keys,omitempty"`
}

// SettingKey describes a setting read by a connector at call time.
type SettingKey struct {
	// Key is the setting name (e.g., "GMAIL_CLIENT_ID").
	Key string `json:"key"`
	// Label is the human-readable label for UI display.
	Label string `json:"label"`
	// Default is the value used when the setting is empty.
	Default string `json:"default,omitempty"`
	// Required indicates the connector cannot authorize without it.
	Required bool `json:"required"`
	// Secret indicates the value must be masked in output.
	Secret bool `json:"secret"`
}
