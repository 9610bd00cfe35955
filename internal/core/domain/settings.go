package domain

// SettingValue is a connector setting together with its resolved value.
type SettingValue struct {
	SettingKey
	// ConnectorID is the connector that reads the setting.
	ConnectorID string `json:"connector_id"`
	// Value is the effective value. Secret values are masked.
	Value string `json:"value"`
	// IsSet is false when Value comes from the default.
	IsSet bool `json:"is_set"`
}

// MaskSecret hides all but the edges of a secret.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
