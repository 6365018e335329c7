// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
	SessionStoreRedis  = "redis"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Catalog REST API
	APIBaseURL   string  `env:"FELIX_API_BASE_URL,required"`
	APIToken     string  `env:"FELIX_API_TOKEN"`                        // Optional bearer token for admin endpoints
	APIRateLimit float64 `env:"FELIX_API_RATE_LIMIT" envDefault:"0"`    // Outbound requests per second (0 = unlimited)

	SessionSecret string `env:"FELIX_SESSION_SECRET,required"`
	ServerHost    string `env:"FELIX_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FELIX_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FELIX_ENV" envDefault:"development"`
	LogLevel      string `env:"FELIX_LOG_LEVEL" envDefault:"info"`

	// Session storage
	SessionStore  string `env:"FELIX_SESSION_STORE" envDefault:"memory"`
	SessionDBPath string `env:"FELIX_SESSION_DB_PATH" envDefault:"./data/sessions.db"`
	RedisURL      string `env:"FELIX_REDIS_URL"` // Used by the redis session store and list snapshots

	// Catalog list snapshots kept between filter re-renders
	SnapshotTTL time.Duration `env:"FELIX_SNAPSHOT_TTL" envDefault:"10m"`

	// Admin login gate
	AdminUsername     string `env:"FELIX_ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"FELIX_ADMIN_PASSWORD_HASH"` // argon2id hash; empty disables the login gate

	AlertDuration time.Duration `env:"FELIX_ALERT_DURATION" envDefault:"5s"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if a Redis URL is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// LoginRequired returns true if the admin login gate is enabled.
func (c Config) LoginRequired() bool {
	return c.AdminPasswordHash != ""
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FELIX_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("FELIX_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("FELIX_SESSION_SECRET is a known default value and must not be used")
		}
	}

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("FELIX_API_BASE_URL must be an absolute http(s) URL, got %q", c.APIBaseURL)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreSQLite:
	case SessionStoreRedis:
		if !c.UseRedis() {
			return fmt.Errorf("FELIX_SESSION_STORE=redis requires FELIX_REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown FELIX_SESSION_STORE %q (want memory, sqlite or redis)", c.SessionStore)
	}

	if c.APIRateLimit < 0 {
		return fmt.Errorf("FELIX_API_RATE_LIMIT must not be negative")
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
