package twilio

import "github.com/custodia-labs/sercha-connect/internal/core/domain"

// ID is the registry key of the Twilio WhatsApp connector.
const ID = "twilio_whatsapp"

// Settings read by the Twilio connector.
const (
	SettingAccountSID   = "TWILIO_ACCOUNT_SID"
	SettingAuthToken    = "TWILIO_AUTH_TOKEN"
	SettingWhatsAppFrom = "TWILIO_WHATSAPP_FROM"
	SettingAPIBase      = "TWILIO_API_BASE"
)

// DefaultAPIBase is the Twilio REST root for API version 2010-04-01.
const DefaultAPIBase = "https://api.twilio.com/2010-04-01"

// DefaultWhatsAppFrom is the Twilio sandbox sender.
const DefaultWhatsAppFrom = "whatsapp:+14155238886"

// WhatsAppPrefix marks an address as a WhatsApp endpoint.
const WhatsAppPrefix = "whatsapp:"

// DefaultPageSize is the page size when no limit is given.
const DefaultPageSize = 20

// ResourceMessages is the only resource type served by Resources.
const ResourceMessages = "messages"

// DefaultConfig returns the registry descriptor for Twilio WhatsApp.
func DefaultConfig() domain.ConnectorConfig {
	return domain.ConnectorConfig{
		ID:               ID,
		Name:             "WhatsApp (Twilio)",
		Description:      "Send and receive WhatsApp messages through the Twilio API.",
		Icon:             "💬",
		Category:         domain.CategoryCommunication,
		RequiresAuth:     true,
		AuthKind:         domain.AuthBasic,
		Status:           domain.StatusNotConnected,
		Enabled:          true,
		DocumentationURL: "https://www.twilio.com/docs/whatsapp/api",
		CredentialKeys:   []string{domain.CredAccountSID, domain.CredAuthToken},
		SettingKeys: []domain.SettingKey{
			{Key: SettingAccountSID, Label: "Account SID", Required: true},
			{Key: SettingAuthToken, Label: "Auth Token", Required: true, Secret: true},
			{Key: SettingWhatsAppFrom, Label: "WhatsApp Sender", Default: DefaultWhatsAppFrom},
		},
	}
}
