package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/connectors/connectortest"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleConnectorsResource(t *testing.T) {
	server, _ := newTestServer(t)

	result, err := server.handleConnectorsResource(context.Background(), readRequest(uriScheme+"connectors"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var configs []domain.ConnectorConfig
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &configs))
	assert.Len(t, configs, 2)
}

func TestServer_handleStatusResource(t *testing.T) {
	server, _ := newTestServer(t)
	ctx := context.Background()

	result, err := server.handleStatusResource(ctx, readRequest(uriScheme+"connectors/bare/status"))
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, `"status": "connected"`)

	_, err = server.handleStatusResource(ctx, readRequest(uriScheme+"connectors/status"))
	assert.Error(t, err)

	_, err = server.handleStatusResource(ctx, readRequest(uriScheme+"connectors/nope/status"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleSettingsResource(t *testing.T) {
	server, env := newTestServer(t)
	require.NoError(t, env.Values.Set(connectortest.SettingClientID, "client-1"))

	result, err := server.handleSettingsResource(context.Background(), readRequest(uriScheme+"connectors/fake/settings"))
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "client-1")

	noSettings, err := NewServer(&Ports{Gateway: env.Gateway})
	require.NoError(t, err)
	_, err = noSettings.handleSettingsResource(context.Background(), readRequest(uriScheme+"connectors/fake/settings"))
	assert.Error(t, err)
}

func TestExtractConnectorID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		suffix string
		want   string
	}{
		{name: "status", uri: "sercha-connect://connectors/gmail/status", suffix: "/status", want: "gmail"},
		{name: "settings", uri: "sercha-connect://connectors/stripe/settings", suffix: "/settings", want: "stripe"},
		{name: "wrong scheme", uri: "other://connectors/gmail/status", suffix: "/status", want: ""},
		{name: "wrong suffix", uri: "sercha-connect://connectors/gmail/history", suffix: "/status", want: ""},
		{name: "nested id", uri: "sercha-connect://connectors/a/b/status", suffix: "/status", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractConnectorID(tt.uri, tt.suffix))
		})
	}
}
