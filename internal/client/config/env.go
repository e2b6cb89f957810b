package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	APIBaseURL     string        `env:"USERDECK_API_BASE_URL"`
	RequestTimeout time.Duration `env:"USERDECK_REQUEST_TIMEOUT"`
	DatabasePath   string        `env:"USERDECK_DB_PATH"`
}

// parseEnv overlays cfg with values from USERDECK_* environment variables.
// Unset variables leave the current values alone.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
}
