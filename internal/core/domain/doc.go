// Package domain defines the core business entities for Sercha Connect.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ConnectorConfig: Static descriptor of a registered connector
//   - ConnectorAuth: Credentials borrowed by a connector for one call
//   - ConnectorStatus: Recomputed health of a connector
//   - Resource: A provider-native item returned by a connector
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
