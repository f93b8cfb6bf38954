package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDevice, cfg.Serial.Device)
	assert.Equal(t, DefaultBaud, cfg.Serial.Baud)
	assert.Equal(t, DefaultReadTimeout, cfg.Serial.ReadTimeoutMs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/metrics", cfg.HTTP.MetricsPath)
	assert.Equal(t, DefaultStaleAfter, cfg.Monitor.StaleAfter)
	assert.Empty(t, cfg.HTTP.Addr)
	assert.False(t, cfg.TUI.Enabled)

	require.NoError(t, Validate(cfg))
}

func TestParseOverrides(t *testing.T) {
	raw := []byte(`
serial:
  device: /dev/ttyUSB1
  baud: 230400
log:
  level: debug
  format: json
  file:
    filename: /tmp/nunchuk.log
    max_size_mb: 10
http:
  addr: ":9100"
  read_timeout: 1s
monitor:
  log_rate_hz: 0.5
  stale_after: 500ms
tui:
  enabled: true
  degrees: true
`)
	cfg, err := Parse(raw)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Device)
	assert.Equal(t, 230400, cfg.Serial.Baud)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/nunchuk.log", cfg.Log.File.Filename)
	assert.Equal(t, 10, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, ":9100", cfg.HTTP.Addr)
	assert.Equal(t, time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTP.WriteTimeout)
	assert.Equal(t, 0.5, cfg.Monitor.LogRateHz)
	assert.Equal(t, 500*time.Millisecond, cfg.Monitor.StaleAfter)
	assert.True(t, cfg.TUI.Enabled)
	assert.True(t, cfg.TUI.Degrees)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("serial:\n  port: /dev/ttyACM0\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nunchuk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serial:\n  baud: 9600\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9600, cfg.Serial.Baud)
	assert.Equal(t, DefaultDevice, cfg.Serial.Device)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no device", func(c *Config) { c.Serial.Device = " " }, ErrNoDevice},
		{"bad baud", func(c *Config) { c.Serial.Baud = -1 }, ErrBadBaud},
		{"zero stale", func(c *Config) { c.Monitor.StaleAfter = 0 }, ErrBadStaleAfter},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), tc.want)
		})
	}
}

func TestValidateLogAndHTTP(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "trace"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Log.Format = "xml"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.HTTP.Addr = ":8080"
	cfg.HTTP.MetricsPath = "metrics"
	assert.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Log.File.Filename = "x.log"
	cfg.Log.File.MaxBackups = -1
	assert.Error(t, Validate(cfg))
}

func TestValidateDoesNotMutate(t *testing.T) {
	cfg := Default()
	before := *cfg
	require.NoError(t, Validate(cfg))
	assert.Equal(t, before, *cfg)
}

func TestLogRateZeroAndNegative(t *testing.T) {
	cfg, err := Parse([]byte("monitor:\n  log_rate_hz: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultLogRateHz), cfg.Monitor.LogRateHz)

	cfg, err = Parse([]byte("monitor:\n  log_rate_hz: -1\n"))
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))
	assert.Equal(t, -1.0, cfg.Monitor.LogRateHz)
}
