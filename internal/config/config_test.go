package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o644))
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "climate.db", cfg.DBPath)
	assert.Equal(t, "/dev/ttyACM0", cfg.Edge.Device)
	assert.Equal(t, 9600, cfg.Edge.Baud)
	assert.Equal(t, 3*time.Second, cfg.Edge.ThresholdRefresh)
	assert.Equal(t, "http://localhost:5000", cfg.Dashboard.APIBaseURL)
	assert.False(t, cfg.Auth.Enabled)
}

func TestLoad_FileValues(t *testing.T) {
	dir := writeConfig(t, `
port: "5050"
db:
  path: /tmp/x.db
edge:
  enabled: true
  simulate: true
  threshold_refresh: 5s
dashboard:
  api_base_url: http://192.0.2.10:5000/
  timeout: 2s
`)
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.True(t, cfg.Edge.Enabled)
	assert.True(t, cfg.Edge.Simulate)
	assert.Equal(t, 5*time.Second, cfg.Edge.ThresholdRefresh)
	assert.Equal(t, "http://192.0.2.10:5000", cfg.Dashboard.APIBaseURL, "trailing slash trimmed")
	assert.Equal(t, 2*time.Second, cfg.Dashboard.Timeout)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CLIMATE_DASHBOARD_API_BASE_URL", "http://device.local:5000")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://device.local:5000", cfg.Dashboard.APIBaseURL)
}

func TestLoad_AuthRequiresKey(t *testing.T) {
	dir := writeConfig(t, "auth:\n  enabled: true\n")
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signing_key")
}
