// Package config loads the nunchuk-host YAML configuration.
package config

import "time"

type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Log     LogConfig     `yaml:"log"`
	HTTP    HTTPConfig    `yaml:"http"`
	Monitor MonitorConfig `yaml:"monitor"`
	TUI     TUIConfig     `yaml:"tui"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Device        string `yaml:"device"`
	Baud          int    `yaml:"baud"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// ---- LOGGING ----

type LogConfig struct {
	Level  string        `yaml:"level"`  // debug|info|warn|error
	Format string        `yaml:"format"` // console|json
	File   LogFileConfig `yaml:"file"`
}

// LogFileConfig enables rotated file output when Filename is set.
type LogFileConfig struct {
	Filename   string `yaml:"filename"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// ---- HTTP ----

// HTTPConfig controls the status endpoint. An empty Addr disables it.
type HTTPConfig struct {
	Addr         string        `yaml:"addr"`
	MetricsPath  string        `yaml:"metrics_path"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ---- MONITOR ----

type MonitorConfig struct {
	// LogRateHz caps how many samples per second are logged at info level.
	// 0 selects the default rate; a negative value turns sample logging off.
	LogRateHz float64 `yaml:"log_rate_hz"`
	// StaleAfter marks the stream not ready when no sample arrived for this long.
	StaleAfter time.Duration `yaml:"stale_after"`
}

// ---- TUI ----

type TUIConfig struct {
	Enabled bool `yaml:"enabled"`
	// Degrees shows angles in degrees instead of radians.
	Degrees bool `yaml:"degrees"`
}
