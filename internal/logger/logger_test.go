package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Disabled(t *testing.T) {
	var out bytes.Buffer
	Init(Options{Enabled: false, Writer: &out})
	t.Cleanup(func() { Set(nil) })

	Error("should not appear")
	assert.Zero(t, out.Len())
}

func TestInit_TextLevel(t *testing.T) {
	var out bytes.Buffer
	Init(Options{Enabled: true, Writer: &out, Level: slog.LevelWarn})
	t.Cleanup(func() { Set(nil) })

	Info("dropped")
	Warn("oom retry", "bytes", 4096)

	got := out.String()
	assert.NotContains(t, got, "dropped")
	assert.Contains(t, got, "oom retry")
	assert.Contains(t, got, "bytes=4096")
}

func TestInit_JSON(t *testing.T) {
	var out bytes.Buffer
	Init(Options{Enabled: true, Writer: &out, JSON: true, Level: slog.LevelDebug})
	t.Cleanup(func() { Set(nil) })

	Debug("fit", "mode", "bicubic")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "fit", rec["msg"])
	assert.Equal(t, "bicubic", rec["mode"])
}

func TestAllocTrace(t *testing.T) {
	t.Setenv(EnvLogAlloc, "")
	assert.False(t, AllocTrace())
	t.Setenv(EnvLogAlloc, "1")
	assert.True(t, AllocTrace())
}
