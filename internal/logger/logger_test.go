package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	SetVerbose(false)
	SetFormat(FormatConsole)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")
	Info("info message")

	assert.Zero(t, buf.Len(), "expected no output when verbose is disabled")
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("probe failed: %d", 503)
	Error("boom")

	assert.Equal(t, "[WARN] probe failed: 503\n[ERROR] boom\n", buf.String())
}

func TestMessageWithoutArgsKeepsPercent(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("100% failed")

	assert.Equal(t, "[WARN] 100% failed\n", buf.String())
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Status")

	assert.Equal(t, "\n=== Status ===\n", buf.String())
}

func TestJSONFormat(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetFormat(FormatJSON)

	Warn("rate limited")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "rate limited", entry["msg"])
}
