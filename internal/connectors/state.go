package connectors

import (
	"crypto/rand"
	"encoding/base64"
)

// stateLength is the number of random bytes in an OAuth state token.
const stateLength = 32

// NewState creates a random state parameter for CSRF protection.
// The caller must round-trip it to the OAuth callback handler.
func NewState() (string, error) {
	bytes := make([]byte, stateLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
