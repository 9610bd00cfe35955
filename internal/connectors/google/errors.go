package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = fmt.Errorf("google: unauthorised: %w", domain.ErrAuthInvalid)

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = fmt.Errorf("google: forbidden (insufficient scopes): %w", domain.ErrAuthInvalid)

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = fmt.Errorf("google: %w", domain.ErrRateLimited)
)

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusUnauthorized
	}
	return false
}

// WrapError converts a Google API error to a domain error.
// Every non-nil result wraps domain.ErrTransport.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAuthRequired) {
		return err
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	var specific error
	switch gerr.Code {
	case http.StatusUnauthorized:
		specific = ErrUnauthorized
	case http.StatusForbidden:
		specific = ErrForbidden
	case http.StatusNotFound:
		specific = ErrNotFound
	case http.StatusTooManyRequests:
		specific = ErrRateLimited
	default:
		specific = gerr
	}
	return fmt.Errorf("%w: %w", domain.ErrTransport, specific)
}
