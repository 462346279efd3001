/*
Package configs is responsible for loading and parsing the application's configuration settings.

It configures server parameters by reading operating system environment variables,
including the running environment, listen port, CORS allowed origins, and the
optional room capacity limit.
*/
package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// AppConfig contains all configuration parameters required for the application to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"9091"`

	// Security Settings
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Room Settings
	// MaxClients caps the number of simultaneous connections; 0 means unlimited.
	MaxClients int `env:"MAX_CLIENTS" envDefault:"0"`
}

// LoadConfig reads and parses the application configuration from environment variables.
// It applies default values for each configuration item and validates the result.
// It returns a pointer to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	if cfg.MaxClients < 0 {
		return nil, fmt.Errorf("MAX_CLIENTS must not be negative, got %d", cfg.MaxClients)
	}

	return cfg, nil
}
