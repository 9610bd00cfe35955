package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Short(t *testing.T) {
	assert.Equal(t, "Print the version number", versionCmd.Short)
}

func TestVersionCmd_Executes(t *testing.T) {
	// Save and restore version
	originalVersion := version
	SetVersion("test-version-1.0.0")
	defer func() { version = originalVersion }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "sercha-connect version test-version-1.0.0")
}

func TestVersionCmd_SkipsBootstrap(t *testing.T) {
	called := false
	oldBootstrap, oldGateway := bootstrap, gateway
	gateway = nil
	SetBootstrap(func(_ context.Context, _ Options) (*Runtime, error) {
		called = true
		return nil, errors.New("should not run")
	})
	defer func() { bootstrap, gateway = oldBootstrap, oldGateway }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)

	assert.NoError(t, rootCmd.Execute())
	assert.False(t, called)
}
