package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/cognos-mcp/internal/config"
)

func TestSetup_RedactsCredentials(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cleanup, err := Setup(Config{Level: "debug", Output: &buf})
	require.NoError(t, err)
	defer cleanup()

	slog.Debug("logging in", slog.String("username", "jdoe"), slog.String("password", "secret"))

	out := buf.String()
	assert.Contains(t, out, "username=jdoe")
	assert.Contains(t, out, "password=[REDACTED]")
	assert.NotContains(t, out, "secret")
}

func TestSetup_Level(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	cleanup, err := Setup(Config{Level: "warn", Output: &buf})
	require.NoError(t, err)
	defer cleanup()

	slog.Info("hidden")
	slog.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "cognos.log")
	cleanup, err := Setup(Config{Level: "info", FilePath: path, MaxSizeMB: 1})
	require.NoError(t, err)

	slog.Info("to file")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFile: "/tmp/x.log", LogMaxBackups: 2, LogCompress: true}
	got := FromConfig(cfg)
	assert.Equal(t, "debug", got.Level)
	assert.Equal(t, "/tmp/x.log", got.FilePath)
	assert.Equal(t, 2, got.MaxBackups)
	assert.True(t, got.Compress)
}
