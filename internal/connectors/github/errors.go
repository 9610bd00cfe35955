package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap classifies the error as a rate limited transport failure.
func (e *RateLimitError) Unwrap() []error {
	return []error{domain.ErrTransport, domain.ErrRateLimited}
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap classifies the response against the domain sentinels.
func (e *APIError) Unwrap() []error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return []error{domain.ErrTransport, domain.ErrAuthInvalid}
	case http.StatusNotFound:
		return []error{domain.ErrTransport, domain.ErrNotFound}
	default:
		return []error{domain.ErrTransport}
	}
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
