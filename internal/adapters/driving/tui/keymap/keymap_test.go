package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Help", km.Help, []string{"?"}},
		{"Back", km.Back, []string{"esc"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"Select", km.Select, []string{"enter"}},
		{"Refresh", km.Refresh, []string{"r"}},
		{"Test", km.Test, []string{"t"}},
		{"Authorize", km.Authorize, []string{"a"}},
		{"Revoke", km.Revoke, []string{"x"}},
		{"Sync", km.Sync, []string{"s"}},
		{"Edit", km.Edit, []string{"e", "enter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Key)
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	assert.Len(t, bindings, 2)
	assert.Equal(t, km.Quit, bindings[0])
	assert.Equal(t, km.Help, bindings[1])
}

func TestConnectorsHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ConnectorsHelp()

	assert.Len(t, bindings, 4)
	assert.Equal(t, km.Select, bindings[0])
	assert.Equal(t, km.Back, bindings[3])
}

func TestDetailHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.DetailHelp()

	assert.Len(t, bindings, 6)
	assert.Equal(t, km.Authorize, bindings[0])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 3)
	assert.Len(t, bindings[0], 3)
	assert.Len(t, bindings[1], 5)
	assert.Len(t, bindings[2], 4)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("x", km.Revoke))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("down", km.Up))
}
