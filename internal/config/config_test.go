package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := Default()
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10, c.ScanTimeoutSeconds)
	assert.Equal(t, 30, c.ConnectTimeoutSeconds)
	assert.Equal(t, 5, c.NotificationTimeoutSeconds)
	assert.Equal(t, 10, c.TapTimeoutSeconds)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadOverridesAndKeepsDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nscan_timeout_seconds: 20\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 20, c.ScanTimeoutSeconds)
	assert.Equal(t, 30, c.ConnectTimeoutSeconds)
}

func TestNewLoggerRejectsInvalidLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "not-a-level"
	_, err := c.NewLogger()
	require.Error(t, err)
}
