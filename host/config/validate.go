package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoDevice      = errors.New("serial.device is required")
	ErrBadBaud       = errors.New("serial.baud must be > 0")
	ErrBadStaleAfter = errors.New("monitor.stale_after must be > 0")
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Serial.Device) == "" {
		return ErrNoDevice
	}
	if cfg.Serial.Baud <= 0 {
		return ErrBadBaud
	}
	if cfg.Serial.ReadTimeoutMs < 0 {
		return fmt.Errorf("serial.read_timeout_ms must be >= 0, got %d", cfg.Serial.ReadTimeoutMs)
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format %q: want console or json", cfg.Log.Format)
	}
	if f := cfg.Log.File; f.Filename != "" {
		if f.MaxSizeMB < 0 || f.MaxBackups < 0 || f.MaxAgeDays < 0 {
			return fmt.Errorf("log.file: rotation limits must be >= 0")
		}
	}

	if cfg.HTTP.Addr != "" && !strings.HasPrefix(cfg.HTTP.MetricsPath, "/") {
		return fmt.Errorf("http.metrics_path %q must start with /", cfg.HTTP.MetricsPath)
	}

	if cfg.Monitor.StaleAfter <= 0 {
		return ErrBadStaleAfter
	}
	return nil
}
