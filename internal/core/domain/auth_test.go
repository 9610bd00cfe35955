package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnectorAuth_Credential(t *testing.T) {
	auth := &ConnectorAuth{
		Kind:        AuthOAuth2,
		Credentials: map[string]string{CredAccessToken: "ya29.token"},
	}

	assert.Equal(t, "ya29.token", auth.Credential(CredAccessToken))
	assert.True(t, auth.HasCredential(CredAccessToken))
	assert.Empty(t, auth.Credential(CredRefreshToken))
	assert.False(t, auth.HasCredential(CredRefreshToken))
}

func TestConnectorAuth_NilReceiver(t *testing.T) {
	var auth *ConnectorAuth

	assert.Empty(t, auth.Credential(CredAccessToken))
	assert.False(t, auth.HasCredential(CredAccessToken))
	assert.False(t, auth.IsExpired(time.Now()))
}

func TestConnectorAuth_IsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"zero expiry never expires", time.Time{}, false},
		{"future expiry", now.Add(time.Hour), false},
		{"past expiry", now.Add(-time.Minute), true},
		{"exactly now", now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &ConnectorAuth{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, auth.IsExpired(now))
		})
	}
}

func TestConnectorStatus_Valid(t *testing.T) {
	for _, s := range []ConnectorStatus{StatusNotConnected, StatusConnected, StatusError, StatusExpired} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ConnectorStatus("unknown").Valid())
}

func TestResourceOptions_LimitOr(t *testing.T) {
	assert.Equal(t, 10, ResourceOptions{}.LimitOr(10))
	assert.Equal(t, 10, ResourceOptions{Limit: -3}.LimitOr(10))
	assert.Equal(t, 5, ResourceOptions{Limit: 5}.LimitOr(10))
}
