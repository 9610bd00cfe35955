package connectors

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sercha-connect/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sercha-connect/internal/connectors/connectortest"
	"github.com/custodia-labs/sercha-connect/internal/core/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedView(t *testing.T, env *connectortest.Env) *View {
	t.Helper()
	v := NewView(nil, env.Gateway)
	v.SetDimensions(120, 40)
	cmd := v.Init()
	require.NotNil(t, cmd)
	assert.True(t, v.Loading())
	v, _ = v.Update(cmd())
	return v
}

func TestView_Init_LoadsStatuses(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyGood))

	v := loadedView(t, env)

	assert.False(t, v.Loading())
	require.Len(t, v.Connectors(), 2)
	r, ok := v.Report(connectortest.FullID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusConnected, r.Status)

	connected, total := v.Bar().Counts()
	assert.Equal(t, 2, connected)
	assert.Equal(t, 2, total)

	out := v.View()
	assert.Contains(t, out, "Fake")
	assert.Contains(t, out, "Bare")
	assert.Contains(t, out, "[billing]")
	assert.Contains(t, out, "2/2 connected")
}

func TestView_NotConnected(t *testing.T) {
	env := connectortest.NewEnv()

	v := loadedView(t, env)

	r, ok := v.Report(connectortest.FullID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusNotConnected, r.Status)
	assert.Contains(t, v.View(), "1/2 connected")
}

func TestView_NilGateway(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(80, 24)

	v, _ = v.Update(v.Init()())

	require.Error(t, v.Err())
	assert.Equal(t, status.StateError, v.Bar().State())
	assert.Contains(t, v.View(), "gateway not available")
}

func TestView_Navigation(t *testing.T) {
	v := loadedView(t, connectortest.NewEnv())

	v, _ = v.Update(runes("k"))
	assert.Equal(t, 0, v.SelectedIndex())

	v, _ = v.Update(runes("j"))
	assert.Equal(t, 1, v.SelectedIndex())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.SelectedIndex())
}

func TestView_EnterSelectsConnector(t *testing.T) {
	v := loadedView(t, connectortest.NewEnv())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	msg, ok := cmd().(messages.ConnectorSelected)
	require.True(t, ok)
	assert.Equal(t, connectortest.FullID, msg.Connector.ID)
}

func TestView_EnterOnEmptyList(t *testing.T) {
	v := NewView(nil, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
}

func TestView_TestKey(t *testing.T) {
	env := connectortest.NewEnv()
	require.NoError(t, env.SaveKey(connectortest.KeyBad))
	v := loadedView(t, env)

	v, cmd := v.Update(runes("t"))
	require.NotNil(t, cmd)
	done, ok := cmd().(messages.ActionCompleted)
	require.True(t, ok)
	assert.Equal(t, "test", done.Action)
	assert.False(t, done.Success)

	v, cmd = v.Update(done)
	assert.Contains(t, v.Bar().Message(), "fake test")
	require.NotNil(t, cmd, "a finished action reloads statuses")

	v, _ = v.Update(cmd())
	r, _ := v.Report(connectortest.FullID)
	assert.Equal(t, domain.StatusError, r.Status)
	assert.Contains(t, v.Bar().Message(), "fake test")
}

func TestView_ActionError(t *testing.T) {
	v := loadedView(t, connectortest.NewEnv())

	v, cmd := v.Update(messages.ActionCompleted{
		ConnectorID: "fake",
		Action:      "test",
		Err:         domain.ErrTransport,
	})

	assert.Nil(t, cmd)
	assert.Equal(t, status.StateError, v.Bar().State())
}

func TestView_Refresh(t *testing.T) {
	v := loadedView(t, connectortest.NewEnv())

	v, cmd := v.Update(runes("r"))

	require.NotNil(t, cmd)
	assert.True(t, v.Loading())
	v, _ = v.Update(cmd())
	assert.False(t, v.Loading())
}

func TestView_RefreshClampsSelection(t *testing.T) {
	v := loadedView(t, connectortest.NewEnv())
	v, _ = v.Update(runes("j"))

	v, _ = v.Update(messages.ConnectorsLoaded{
		Connectors: []domain.ConnectorConfig{connectortest.Config()},
	})

	assert.Equal(t, 0, v.SelectedIndex())
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil, nil)

	v, _ = v.Update(messages.ConnectorsLoaded{})

	assert.Contains(t, v.View(), "No connectors registered.")
}
