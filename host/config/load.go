package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied to unset fields.
const (
	DefaultDevice      = "/dev/ttyACM0"
	DefaultBaud        = 115200
	DefaultReadTimeout = 100
	DefaultLevel       = "info"
	DefaultFormat      = "console"
	DefaultMetricsPath = "/metrics"
	DefaultLogRateHz   = 2
	DefaultStaleAfter  = 2 * time.Second
	DefaultHTTPTimeout = 5 * time.Second
)

// Load reads, parses and defaults a configuration file.
// It does not validate; call Validate afterwards.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML and applies defaults. Unknown keys are rejected and
// an empty document yields the defaults.
func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills unset fields in place.
func ApplyDefaults(cfg *Config) {
	if cfg.Serial.Device == "" {
		cfg.Serial.Device = DefaultDevice
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = DefaultBaud
	}
	if cfg.Serial.ReadTimeoutMs == 0 {
		cfg.Serial.ReadTimeoutMs = DefaultReadTimeout
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultFormat
	}

	if cfg.HTTP.MetricsPath == "" {
		cfg.HTTP.MetricsPath = DefaultMetricsPath
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = DefaultHTTPTimeout
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = DefaultHTTPTimeout
	}

	if cfg.Monitor.LogRateHz == 0 {
		cfg.Monitor.LogRateHz = DefaultLogRateHz
	}
	if cfg.Monitor.StaleAfter == 0 {
		cfg.Monitor.StaleAfter = DefaultStaleAfter
	}
}
