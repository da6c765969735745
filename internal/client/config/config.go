// Package config loads runtime configuration for the logbook CLI.
//
// Sources & precedence: built-in defaults, then an optional JSON file
// (selected via -c or -config), then command-line flags.
package config

import "time"

// Config holds runtime settings for the logbook CLI.
//
// Fields:
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - HTTPTimeout: per-request timeout for upload round-trips.
type Config struct {
	DatabaseDSN string
	HTTPTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "divelog.db"
	c.HTTPTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
