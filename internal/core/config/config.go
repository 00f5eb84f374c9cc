package config

import (
	"time"

	"github.com/vietddude/ramp/internal/core/domain"
	redisclient "github.com/vietddude/ramp/internal/infra/redis"
	"github.com/vietddude/ramp/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server    ServerConfig       `yaml:"server"`
	Robinhood RobinhoodConfig    `yaml:"robinhood"`
	Prime     PrimeConfig        `yaml:"prime"`
	Registry  RegistryConfig     `yaml:"registry"`
	RateLimit RateLimitConfig    `yaml:"rate_limit"`
	Redis     redisclient.Config `yaml:"redis"`
	Logging   LoggingConfig      `yaml:"logging"`
	Database  postgres.Config    `yaml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	AppURL          string        `yaml:"app_url"` // base for the Robinhood redirect
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RobinhoodConfig holds Robinhood Connect API settings.
type RobinhoodConfig struct {
	BaseURL       string        `yaml:"base_url"`
	ApplicationID string        `yaml:"application_id"`
	APIKey        string        `yaml:"api_key"`
	Timeout       time.Duration `yaml:"timeout"`
	RateLimit     float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
	Burst         int           `yaml:"burst"`
}

// PrimeConfig holds Coinbase Prime API settings.
type PrimeConfig struct {
	Enabled     bool          `yaml:"enabled"`
	BaseURL     string        `yaml:"base_url"`
	AccessKey   string        `yaml:"access_key"`
	SigningKey  string        `yaml:"signing_key"`
	Passphrase  string        `yaml:"passphrase"`
	PortfolioID string        `yaml:"portfolio_id"`
	Timeout     time.Duration `yaml:"timeout"`
}

// RegistryConfig controls deposit address registry behaviour.
type RegistryConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"` // 0 = build once
	FailOnInvalid   bool          `yaml:"fail_on_invalid"`
}

// RateLimitConfig is the inbound limit per client.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"` // 0 = default 10, negative = disabled
	Window   time.Duration `yaml:"window"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// Validate reports the first missing required setting.
func (c *AppConfig) Validate() error {
	if c.Robinhood.ApplicationID == "" {
		return &domain.ConfigError{Key: "robinhood.application_id", Message: "is required"}
	}
	if c.Robinhood.APIKey == "" {
		return &domain.ConfigError{Key: "robinhood.api_key", Message: "is required"}
	}
	if c.Prime.Enabled {
		switch {
		case c.Prime.AccessKey == "":
			return &domain.ConfigError{Key: "prime.access_key", Message: "is required when prime is enabled"}
		case c.Prime.SigningKey == "":
			return &domain.ConfigError{Key: "prime.signing_key", Message: "is required when prime is enabled"}
		case c.Prime.Passphrase == "":
			return &domain.ConfigError{Key: "prime.passphrase", Message: "is required when prime is enabled"}
		case c.Prime.PortfolioID == "":
			return &domain.ConfigError{Key: "prime.portfolio_id", Message: "is required when prime is enabled"}
		}
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window < time.Millisecond {
		return &domain.ConfigError{Key: "rate_limit.window", Message: "must be at least 1ms"}
	}
	return nil
}
