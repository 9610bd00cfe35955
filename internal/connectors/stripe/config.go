package stripe

import "github.com/custodia-labs/sercha-connect/internal/core/domain"

// ID is the registry key of the Stripe connector.
const ID = "stripe"

// Settings read by the Stripe connector.
const (
	SettingSecretKey = "STRIPE_SECRET_KEY"
	SettingAPIBase   = "STRIPE_API_BASE"
)

// DefaultAPIBase is Stripe's REST root.
const DefaultAPIBase = "https://api.stripe.com/v1"

// SecretKeyPrefix is the prefix of every Stripe secret key.
const SecretKeyPrefix = "sk_"

// DefaultLimit is the page size when no limit is given.
const DefaultLimit = 10

// Resource types served by Resources.
const (
	ResourceCustomers     = "customers"
	ResourceSubscriptions = "subscriptions"
)

// DefaultConfig returns the registry descriptor for Stripe.
func DefaultConfig() domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:               ID,
		Name:             "Stripe",
		Description:      "Connect to Stripe to manage billing, payments, and customer subscriptions.",
		Icon:             "💳",
		Category:         domain.CategoryBilling,
		RequiresAuth:     true,
		AuthKind:         domain.AuthAPIKey,
		Status:           domain.StatusNotConnected,
		Enabled:          true,
		DocumentationURL: "https://stripe.com/docs/api",
		CredentialKeys:   []string{domain.CredAPIKey},
		SettingKeys: []domain.SettingKey{
			{Key: SettingSecretKey, Label: "Secret Key", Required: true, Secret: true},
		},
	}
}
