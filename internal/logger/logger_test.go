package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})

	return &buf
}

func TestSetVerbose(t *testing.T) {
	resetLogger(t)

	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	buf := resetLogger(t)

	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("visible %s", "message")
	assert.Equal(t, "[DEBUG] visible message\n", buf.String())
}

func TestInfo_OnlyWhenVerbose(t *testing.T) {
	buf := resetLogger(t)

	Info("hidden")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Info("queued %d notes", 3)
	assert.Equal(t, "[INFO] queued 3 notes\n", buf.String())
}

func TestWarn_AlwaysEmitted(t *testing.T) {
	buf := resetLogger(t)

	Warn("drain failed: %s", "boom")
	assert.Equal(t, "[WARN] drain failed: boom\n", buf.String())
}
