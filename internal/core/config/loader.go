package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3030
	}
	if cfg.Server.AppURL == "" {
		cfg.Server.AppURL = "http://localhost:3030"
	}
	cfg.Server.AppURL = strings.TrimRight(cfg.Server.AppURL, "/")
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}

	if cfg.Robinhood.BaseURL == "" {
		cfg.Robinhood.BaseURL = "https://api.robinhood.com"
	}
	if cfg.Robinhood.Timeout == 0 {
		cfg.Robinhood.Timeout = 10 * time.Second
	}
	if cfg.Robinhood.RateLimit > 0 && cfg.Robinhood.Burst == 0 {
		cfg.Robinhood.Burst = 1
	}

	if cfg.Prime.BaseURL == "" {
		cfg.Prime.BaseURL = "https://api.prime.coinbase.com"
	}
	if cfg.Prime.Timeout == 0 {
		cfg.Prime.Timeout = 30 * time.Second
	}

	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = 10
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = time.Minute
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "pgx"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
