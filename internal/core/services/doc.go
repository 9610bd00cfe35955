// Package services holds the gateway core: the connector registry, the
// gateway that dispatches lifecycle calls to connectors, the settings
// service and the background status monitor.
//
// Services depend only on ports; adapters are injected by main.
package services
