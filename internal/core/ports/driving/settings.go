package driving

import "github.com/custodia-labs/sercha-connect/internal/core/domain"

// SettingsService exposes the settings connectors read at call time.
type SettingsService interface {
	// Describe returns the settings of one connector with resolved values.
	Describe(connectorID string) ([]domain.SettingValue, error)

	// DescribeAll returns the settings of every registered connector.
	DescribeAll() []domain.SettingValue

	// Set writes a known setting. An empty value clears it.
	Set(key, value string) error

	// Validate fails with domain.ErrInvalidInput when a required
	// setting of the connector has no value.
	Validate(connectorID string) error
}
