package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driven"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService resolves connector settings through the same source
// the connectors read, and writes changes to a persistent store.
type SettingsService struct {
	registry driving.ConnectorRegistry
	settings driven.Settings
	store    driven.WritableSettings
}

// NewSettingsService creates a settings service. store may be nil, in
// which case Set fails with domain.ErrUnsupported.
func NewSettingsService(
	registry driving.ConnectorRegistry, settings driven.Settings, store driven.WritableSettings,
) *SettingsService {
	return &SettingsService{
		registry: registry,
		settings: settings,
		store:    store,
	}
}

// Describe returns the settings of one connector with resolved values.
func (s *SettingsService) Describe(connectorID string) ([]domain.SettingValue, error) {
	cfg, ok := s.registry.Config(connectorID)
	if !ok {
		return nil, fmt.Errorf("connector %q: %w", connectorID, domain.ErrNotFound)
	}
	return s.resolve(cfg), nil
}

// DescribeAll returns the settings of every registered connector in
// registration order.
func (s *SettingsService) DescribeAll() []domain.SettingValue {
	var values []domain.SettingValue
	for _, cfg := range s.registry.ListAll() {
		values = append(values, s.resolve(cfg)...)
	}
	return values
}

// Set writes a setting declared by at least one connector.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if !s.known(key) {
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
	if s.store == nil {
		return fmt.Errorf("set %s: no settings store configured: %w", key, domain.ErrUnsupported)
	}
	if err := s.store.Set(key, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Validate checks that every required setting of the connector is set.
func (s *SettingsService) Validate(connectorID string) error {
	values, err := s.Describe(connectorID)
	if err != nil {
		return err
	}

	var missing []string
	for _, v := range values {
		if v.Required && v.Value == "" {
			missing = append(missing, v.Key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s: missing %s: %w", connectorID, strings.Join(missing, ", "), domain.ErrInvalidInput)
	}
	return nil
}

func (s *SettingsService) resolve(cfg domain.ConnectorConfig) []domain.SettingValue {
	values := make([]domain.SettingValue, 0, len(cfg.SettingKeys))
	for _, key := range cfg.SettingKeys {
		v := domain.SettingValue{SettingKey: key, ConnectorID: cfg.ID}
		if s.settings != nil {
			v.Value = strings.TrimSpace(s.settings.Get(key.Key))
		}
		v.IsSet = v.Value != ""
		switch {
		case !v.IsSet:
			v.Value = key.Default
		case key.Secret:
			v.Value = domain.MaskSecret(v.Value)
		}
		values = append(values, v)
	}
	return values
}

func (s *SettingsService) known(key string) bool {
	if key == "" {
		return false
	}
	for _, cfg := range s.registry.ListAll() {
		for _, k := range cfg.SettingKeys {
			if k.Key == key {
				return true
			}
		}
	}
	return false
}
