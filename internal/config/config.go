package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultSessionSecret is the development signing key. Running with it in
// production logs a warning at startup.
const DefaultSessionSecret = "dev-secret-key-change-in-production"

const (
	minBcryptCost = 10
	maxBcryptCost = 31
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel      int      `env:"LOG_LEVEL" envDefault:"0"`
	LogFormat     string   `env:"LOG_FORMAT" envDefault:"text"`
	Environment   string   `env:"ENVIRONMENT" envDefault:"development"`
	HTTP          HTTP     `envPrefix:"HTTP_"`
	Database      Database `envPrefix:"DATABASE_"`
	Session       Session  `envPrefix:"SESSION_"`
	BcryptCost    int      `env:"BCRYPT_COST" envDefault:"12"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	SeedUsersFile string   `env:"SEED_USERS_FILE"`
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Port               string        `env:"PORT" envDefault:"5000"`
	EnableHTTPS        bool          `env:"ENABLE_HTTPS" envDefault:"false"`
	CertFileName       string        `env:"CERT_FILE_NAME" envDefault:"cert.pem"`
	PrivateKeyFileName string        `env:"PRIVATE_KEY_FILE_NAME" envDefault:"key.pem"`
	ReadTimeout        time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout       time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout        time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	MaxBodyBytes       int64         `env:"MAX_BODY_BYTES" envDefault:"4096"`
}

// Database contains database connection parameters.
// An empty DSN selects the in-memory user store.
type Database struct {
	DSN string `env:"DSN"`
}

// Session contains session cookie and signing parameters.
type Session struct {
	Secret      string        `env:"SECRET" envDefault:"dev-secret-key-change-in-production"`
	CookieName  string        `env:"COOKIE_NAME" envDefault:"session"`
	TTL         time.Duration `env:"TTL" envDefault:"24h"`
	RememberTTL time.Duration `env:"REMEMBER_TTL" envDefault:"720h"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", minBcryptCost, maxBcryptCost, c.BcryptCost))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("SESSION_COOKIE_NAME must not be empty"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Session.RememberTTL <= 0 {
		errs = append(errs, errors.New("SESSION_REMEMBER_TTL must be positive"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("HTTP_MAX_BODY_BYTES must be positive"))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDefaultSecret reports whether sessions are signed with the development key.
func (c *Config) UsesDefaultSecret() bool {
	return c.Session.Secret == DefaultSessionSecret
}

// AllowsAnyOrigin reports whether CORS accepts every origin.
func (c *Config) AllowsAnyOrigin() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}
