package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseCreatesDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	t.Setenv("MOLLY_SERVER_URL", "")
	t.Setenv("MOLLY_STATE_DIR", filepath.Join(dir, "state"))

	config, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, defaultConfig.ServerURL, config.ServerURL)
	require.Equal(t, defaultConfig.RequestTimeout, config.RequestTimeout)

	// The default file is written for the user to edit.
	bytes, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(bytes), "server_url")
}

func TestParseMergesPartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	t.Setenv("MOLLY_SERVER_URL", "")
	t.Setenv("MOLLY_STATE_DIR", filepath.Join(dir, "state"))

	require.NoError(t, os.WriteFile(path, []byte(`{"server_url": "http://molly.internal:5000"}`), 0644))

	config, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, "http://molly.internal:5000", config.ServerURL)
	// Unset fields fall back to defaults.
	require.Equal(t, defaultConfig.RequestTimeout, config.RequestTimeout)
}

func TestParseEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	stateDir := filepath.Join(dir, "custom-state")
	t.Setenv("MOLLY_SERVER_URL", "http://override:9999")
	t.Setenv("MOLLY_STATE_DIR", stateDir)

	config, err := Parse(path)
	require.NoError(t, err)

	require.Equal(t, "http://override:9999", config.ServerURL)
	require.Equal(t, stateDir, config.StateDirectory)

	// The state directory is created eagerly.
	info, err := os.Stat(stateDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestParseRejectsMalformedConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	t.Setenv("MOLLY_STATE_DIR", filepath.Join(dir, "state"))

	require.NoError(t, os.WriteFile(path, []byte("{not-json"), 0644))

	_, err := Parse(path)
	require.Error(t, err)
}

func TestTimeout(t *testing.T) {
	config := &Config{RequestTimeout: 60}
	require.Equal(t, time.Minute, config.Timeout())
}
