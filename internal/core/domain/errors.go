package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a referenced connector id has no registry entry.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupported indicates an optional operation the connector does not implement.
	// Unlike transport failures this propagates to the caller.
	ErrUnsupported = errors.New("operation not supported by this connector")

	// Authentication Errors.

	// ErrAuthRequired indicates the operation needs credentials and none are configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the configured credentials are malformed or rejected.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrAuthExpired indicates the credentials are past their expiry.
	ErrAuthExpired = errors.New("authentication expired")

	// Provider Errors.

	// ErrTransport indicates a network failure or non-success response from a provider.
	ErrTransport = errors.New("provider request failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
