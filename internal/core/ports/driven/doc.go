// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Connector: Lifecycle contract every integration implements
//   - ConnectorFactory: Creates a fresh connector bound to config and auth
//   - Settings: Client ids, redirect URIs and secrets read at call time
//   - AuthStore: Supplies the auth object handed to a connector
//
// # Optional Interfaces
//
// Connectors may implement these; callers probe with a type assertion:
//
//   - ResourceLister: Lists provider resources by type
//   - ResourceCreator: Creates provider resources
//   - Syncer: Pulls data from the provider
//   - EmailSender, PortalSessionCreator, WhatsAppSender: per-provider extras
package driven
