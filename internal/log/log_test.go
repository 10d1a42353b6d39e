package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects log output to a buffer for the duration of the test
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetDebugMode(false)
	})
	return &buf
}

func TestDebug_OnlyInDebugMode(t *testing.T) {
	buf := capture(t)

	SetDebugMode(false)
	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())

	SetDebugMode(true)
	assert.True(t, IsDebugMode())
	Debug("visible %s", "message")
	assert.Contains(t, buf.String(), "[DEBUG] visible message")
}

func TestInfoWarnError(t *testing.T) {
	buf := capture(t)

	Info("created %s", "file")
	Warn("falling back to %s", "defaults")
	Error("something %s", "broke")

	out := buf.String()
	assert.Contains(t, out, "created file")
	assert.Contains(t, out, "Warning: falling back to defaults")
	assert.Contains(t, out, "Error: something broke")

	// one line per call
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestDebugConfig(t *testing.T) {
	buf := capture(t)
	SetDebugMode(true)

	DebugConfig("Settings", map[string]string{"model": "gpt-4o-mini"})
	assert.Contains(t, buf.String(), "Settings")
	assert.Contains(t, buf.String(), "gpt-4o-mini")
}
