package cli

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/connectors/connectortest"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
	"github.com/custodia-labs/sercha-connect/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-connect/internal/core/services"
)

func TestList(t *testing.T) {
	env := connectortest.NewEnv()

	out, err := execute(t, env, "", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, connectortest.FullID)
	assert.Contains(t, out, connectortest.BareID)
}

func TestList_Category(t *testing.T) {
	env := connectortest.NewEnv()

	out, err := execute(t, env, "", "list", "--category", domain.CategoryProductivity)

	require.NoError(t, err)
	assert.Contains(t, out, connectortest.BareID)
	assert.NotContains(t, out, "Fake")
}

func TestList_JSON(t *testing.T) {
	env := connectortest.NewEnv()

	out, err := execute(t, env, "", "list", "--json")

	require.NoError(t, err)
	var configs []domain.ConnectorConfig
	require.NoError(t, json.Unmarshal([]byte(out), &configs))
	require.Len(t, configs, 2)
	assert.Equal(t, connectortest.FullID, configs[0].ID)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		key  string
		args []string
		want []string
	}{
		{
			name: "all connectors",
			args: []string{"status"},
			want: []string{connectortest.FullID, connectortest.BareID, "not_connected", "connected"},
		},
		{
			name: "one connected",
			key:  connectortest.KeyGood,
			args: []string{"status", connectortest.FullID},
			want: []string{"Connector is connected"},
		},
		{
			name: "one failing",
			key:  connectortest.KeyBad,
			args: []string{"status", connectortest.FullID},
			want: []string{"error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := connectortest.NewEnv()
			if tt.key != "" {
				require.NoError(t, env.SaveKey(tt.key))
			}

			out, err := execute(t, env, "", tt.args...)

			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestStatus_Unknown(t *testing.T) {
	_, err := execute(t, connectortest.NewEnv(), "", "status", "nope")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatus_JSON(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))

	out, err := execute(t, env, "", "status", connectortest.FullID, "--json")

	require.NoError(t, err)
	var reports []driving.StatusReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, domain.StatusConnected, reports[0].Status)
}

func TestHistory(t *testing.T) {
	env := connectortest.NewEnv()

	out, err := execute(t, env, "", "history", connectortest.FullID)
	require.NoError(t, err)
	assert.Contains(t, out, "No status checks recorded.")

	_, err = env.Gateway.Status(context.Background(), connectortest.FullID)
	require.NoError(t, err)

	out, err = execute(t, env, "", "history", connectortest.FullID, "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "CHECKED AT")
	assert.Contains(t, out, "not_connected")
}

func TestHistory_Unknown(t *testing.T) {
	_, err := execute(t, connectortest.NewEnv(), "", "history", "nope")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthorize(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))

	out, err := execute(t, env, "", "authorize", connectortest.FullID)

	require.NoError(t, err)
	assert.Contains(t, out, "ready: Fake key configured")
}

func TestAuthorize_MissingKey(t *testing.T) {
	_, err := execute(t, connectortest.NewEnv(), "", "authorize", connectortest.FullID)

	require.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestRevoke(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))

	out, err := execute(t, env, "", "revoke", connectortest.FullID)

	require.NoError(t, err)
	assert.Contains(t, out, services.MessageRevoked)
	auth, err := env.Auth.Get(context.Background(), connectortest.FullID)
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestRevoke_Refused(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeySticky))

	out, err := execute(t, env, "", "revoke", connectortest.FullID)

	require.ErrorIs(t, err, errActionFailed)
	assert.Contains(t, out, services.MessageRevokeFailed)
	auth, err := env.Auth.Get(context.Background(), connectortest.FullID)
	require.NoError(t, err)
	assert.NotNil(t, auth)
}

func TestTestCmd(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
		want    string
	}{
		{connectortest.KeyGood, false, services.MessageTestSucceeded},
		{connectortest.KeyBad, true, services.MessageTestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			env := connectortest.NewEnv()
			require.NoError(t, env.SaveKey(tt.key))

			out, err := execute(t, env, "", "test", connectortest.FullID)

			if tt.wantErr {
				require.ErrorIs(t, err, errActionFailed)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestTestCmd_JSON(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))

	out, err := execute(t, env, "", "test", connectortest.FullID, "--json")

	require.NoError(t, err)
	var result driving.ActionResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.True(t, result.Success)
}

func TestSync(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))

	out, err := execute(t, env, "", "sync", connectortest.FullID)

	require.NoError(t, err)
	assert.Contains(t, out, "Synchronising fake...")
	assert.Contains(t, out, "Synced 3 items (completed)")
}

func TestSync_WithoutCapability(t *testing.T) {
	out, err := execute(t, connectortest.NewEnv(), "", "sync", connectortest.BareID)

	require.NoError(t, err)
	assert.Contains(t, out, domain.SyncNotImplemented)
}
