package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration sourced from env vars. It is
// constructed once in main and passed into the components that need it;
// nothing reads the environment after startup.
type Config struct {
	Port     string `env:"PORT" envDefault:"3005"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DatabaseURL, when set, overrides the discrete DB_* variables.
	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"`
	DBPort      string `env:"DB_PORT" envDefault:"5432"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTIssuer string        `env:"JWT_ISSUER" envDefault:"minauth"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
}

// Load parses configuration from the environment and performs minimal
// validation.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" && (cfg.DBUser == "" || cfg.DBName == "") {
		return Config{}, errors.New("either DATABASE_URL or DB_USER and DB_NAME are required")
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL
// over the discrete DB_* variables.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}
