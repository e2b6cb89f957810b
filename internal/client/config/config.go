// Package config loads runtime configuration for the userdeck CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via the -c or -config flags.
//  3. Environment variables (USERDECK_*, see parseEnv).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the user directory API
//	-t int      request timeout (seconds)
//	-d string   path to the local credential database
//
// # JSON schema
//
// Durations accept either strings like "10s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://reqres.in/api",
//	  "request_timeout": "10s",
//	  "database_path": "userdeck.db"
//	}
package config

import "time"

// Config holds runtime settings for the CLI.
type Config struct {
	// APIBaseURL is the root of the remote user directory API.
	APIBaseURL string

	// RequestTimeout bounds every gateway call.
	RequestTimeout time.Duration

	// DatabasePath locates the local SQLite credential store.
	DatabasePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://reqres.in/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "userdeck.db"
}

// LoadConfig constructs a Config by applying defaults, then overlaying JSON,
// environment, and command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
