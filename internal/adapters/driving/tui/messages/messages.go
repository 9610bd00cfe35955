// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewConnectors is the connector status dashboard.
	ViewConnectors
	// ViewConnectorDetail shows one connector with its history.
	ViewConnectorDetail
	// ViewSettings is the settings view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewConnectors:
		return "connectors"
	case ViewConnectorDetail:
		return "connector_detail"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ConnectorsLoaded carries registered connectors and their current status.
type ConnectorsLoaded struct {
	Connectors []domain.ConnectorConfig
	Reports    []driving.StatusReport
	Err        error
}

// ConnectorSelected signals a connector was picked from the dashboard.
type ConnectorSelected struct {
	Connector domain.ConnectorConfig
}

// DetailLoaded carries the status, settings and history of one connector.
type DetailLoaded struct {
	ConnectorID string
	Report      driving.StatusReport
	Settings    []domain.SettingValue
	History     []domain.StatusRecord
	Err         error
}

// ActionCompleted reports the outcome of authorize, test, revoke or sync.
type ActionCompleted struct {
	ConnectorID string
	Action      string
	Success     bool
	Message     string
	Err         error
}

// SettingsLoaded carries every connector setting.
type SettingsLoaded struct {
	Settings []domain.SettingValue
	Err      error
}

// SettingSaved signals a setting was written.
type SettingSaved struct {
	Key string
	Err error
}
