package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebURL(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want string
	}{
		{"message id", "18abc123def456", "https://mail.google.com/mail/u/0/#all/18abc123def456"},
		{"empty id", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, webURL(tt.id))
		})
	}
}

func TestBuildRawMessage(t *testing.T) {
	raw, err := buildRawMessage("alice@example.com", "Héllo", "body text")
	require.NoError(t, err)

	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	msg := string(decoded)

	assert.Contains(t, msg, "To: alice@example.com\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?H=C3=A9llo?=\r\n")
	assert.Contains(t, msg, "\r\n\r\nbody text")
}

func TestBuildRawMessage_RejectsHeaderInjection(t *testing.T) {
	tests := []struct {
		name    string
		to      string
		subject string
	}{
		{"to", "a@b.c\r\nBcc: evil@x.y", "hi"},
		{"subject", "a@b.c", "hi\nBcc: evil@x.y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildRawMessage(tt.to, tt.subject, "body")
			require.Error(t, err)
		})
	}
}
