package connectordetail

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-connect/internal/connectors/connectortest"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoaded(t *testing.T, env *connectortest.Env) *View {
	t.Helper()
	v := NewView(nil, env.Gateway, env.Settings)
	v.SetDimensions(120, 40)
	cmd := v.SetConnector(connectortest.Config())
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

// press sends a key and feeds the resulting action back into the view.
func press(t *testing.T, v *View, key string) (*View, messages.ActionCompleted) {
	t.Helper()
	v, cmd := v.Update(runes(key))
	require.NotNil(t, cmd)
	done, ok := cmd().(messages.ActionCompleted)
	require.True(t, ok)
	v, _ = v.Update(done)
	return v, done
}

func TestView_Init_WithoutConnector(t *testing.T) {
	v := NewView(nil, nil, nil)

	assert.Nil(t, v.Init())
}

func TestView_Load(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))

	v := newLoaded(t, env)

	require.NoError(t, v.Err())
	assert.Equal(t, domain.StatusConnected, v.Report().Status)
	require.Len(t, v.History(), 1)
	require.Len(t, v.Settings(), 1)
	assert.Equal(t, connectortest.SettingClientID, v.Settings()[0].Key)

	out := v.View()
	assert.Contains(t, out, "Fake")
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, connectortest.SettingClientID)
	assert.Contains(t, out, "required")
	assert.Contains(t, out, "Recent checks")
}

func TestView_NoHistoryYet(t *testing.T) {
	env := connectortest.NewEnv()
	v := NewView(nil, env.Gateway, nil)
	v.SetDimensions(80, 24)
	_ = v.SetConnector(connectortest.Config())

	assert.Contains(t, v.View(), "Loading...")

	v, _ = v.Update(messages.DetailLoaded{ConnectorID: connectortest.FullID})
	assert.Contains(t, v.View(), "No checks recorded.")
}

func TestView_LoadError(t *testing.T) {
	env := connectortest.NewEnv()
	v := NewView(nil, env.Gateway, env.Settings)

	cmd := v.SetConnector(domain.ConnectorConfig{ID: "ghost", Name: "Ghost"})
	v, _ = v.Update(cmd())

	require.Error(t, v.Err())
	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_IgnoresStaleMessages(t *testing.T) {
	v := newLoaded(t, connectortest.NewEnv())

	v, cmd := v.Update(messages.DetailLoaded{ConnectorID: "other", Err: domain.ErrTransport})
	assert.Nil(t, cmd)
	assert.NoError(t, v.Err())

	v, cmd = v.Update(messages.ActionCompleted{ConnectorID: "other", Action: "test"})
	assert.Nil(t, cmd)
	assert.Empty(t, v.Bar().Message())
}

func TestView_Actions(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		action  string
		success bool
		message string
	}{
		{"authorize", "a", "authorize", true, "Fake key configured"},
		{"test", "t", "test", true, ""},
		{"sync", "s", "sync", true, "completed (3 synced)"},
		{"revoke", "x", "revoke", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := connectortest.NewEnv()
			require.NoError(t, env.SaveKey(connectortest.KeyGood))
			v := newLoaded(t, env)

			v, cmd := v.Update(runes(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, tt.action, v.Busy())

			done, ok := cmd().(messages.ActionCompleted)
			require.True(t, ok)
			assert.Equal(t, tt.action, done.Action)
			assert.Equal(t, tt.success, done.Success)
			require.NoError(t, done.Err)
			if tt.message != "" {
				assert.Equal(t, tt.message, done.Message)
			}

			v, cmd = v.Update(done)
			assert.Empty(t, v.Busy())
			assert.Contains(t, v.Bar().Message(), tt.action)
			assert.NotNil(t, cmd, "a finished action reloads the connector")
		})
	}
}

func TestView_RevokeForgetsAuth(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))
	v := newLoaded(t, env)

	_, done := press(t, v, "x")

	assert.True(t, done.Success)
	auth, err := env.Auth.Get(context.Background(), connectortest.FullID)
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestView_AuthorizeWithoutKey(t *testing.T) {
	v := newLoaded(t, connectortest.NewEnv())

	v, done := press(t, v, "a")

	require.ErrorIs(t, done.Err, domain.ErrAuthRequired)
	assert.Contains(t, v.Bar().Message(), "authorize failed")
}

func TestView_KeysIgnoredWhileBusy(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))
	v := newLoaded(t, env)

	v, cmd := v.Update(runes("t"))
	require.NotNil(t, cmd)

	_, cmd = v.Update(runes("s"))
	assert.Nil(t, cmd)
}

func TestView_EscGoesBack(t *testing.T) {
	v := NewView(nil, nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewConnectors}, cmd())
}

func TestView_RefreshRecordsHistory(t *testing.T) {
	env := connectortest.NewEnv()
	v := newLoaded(t, env)

	v, cmd := v.Update(runes("r"))
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())

	assert.Len(t, v.History(), 2)
}
