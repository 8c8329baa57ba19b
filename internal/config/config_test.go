package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, SensorSourceSimulated, cfg.Sensors.Source)
	assert.Equal(t, 5*time.Second, cfg.SensorInterval())
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout())
	assert.Equal(t, 5, cfg.RateLimit.PerMinute)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Backend.URL)
}

func TestLoad_EmptyBackendURLDisablesBackend(t *testing.T) {
	t.Setenv("BACKEND_URL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Backend.URL)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Port, cfg.Port)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: pond-7
port: "9000"
log:
  level: debug
  format: json
backend:
  url: http://127.0.0.1:8000
  timeout: 3s
sensors:
  source: remote
  interval: 10s
rate_limit:
  per_minute: 20
`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("RATE_LIMIT", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pond-7", cfg.AppName)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, SensorSourceRemote, cfg.Sensors.Source)
	assert.Equal(t, 10*time.Second, cfg.SensorInterval())
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout())
	assert.Equal(t, 7, cfg.RateLimit.PerMinute)
	assert.Equal(t, 60, cfg.Sensors.HistorySize)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"remote without backend": {"SENSOR_SOURCE": "remote", "BACKEND_URL": ""},
		"unknown source":         {"SENSOR_SOURCE": "serial"},
		"bad interval":           {"SENSOR_INTERVAL": "often"},
		"zero timeout":           {"BACKEND_TIMEOUT": "0s"},
		"bad rate limit":         {"RATE_LIMIT": "lots"},
		"bad port":               {"PORT": "http"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [1, 2"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
