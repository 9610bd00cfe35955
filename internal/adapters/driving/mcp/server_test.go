package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/connectors/connectortest"
)

func newTestServer(t *testing.T) (*Server, *connectortest.Env) {
	t.Helper()
	env := connectortest.NewEnv()
	server, err := NewServer(&Ports{Gateway: env.Gateway, Settings: env.Settings})
	require.NoError(t, err)
	return server, env
}

func TestNewServer(t *testing.T) {
	t.Run("nil gateway returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingGateway)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, _ := newTestServer(t)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil gateway returns error", func(t *testing.T) {
		ports := &Ports{}
		assert.ErrorIs(t, ports.Validate(), ErrMissingGateway)
	})

	t.Run("gateway only is valid", func(t *testing.T) {
		ports := &Ports{Gateway: connectortest.NewEnv().Gateway}
		assert.NoError(t, ports.Validate())
	})
}
