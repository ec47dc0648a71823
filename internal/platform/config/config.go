// Copyright (c) 2026 AlgoArena. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the AlgoArena API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"         envDefault:"5000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Access token signing. JWT_ACCESS_SECRET is authoritative; JWT_SECRET is
	// accepted as a shared fallback for older deployments. Refresh tokens are
	// opaque and hashed, so no refresh secret exists.
	AccessSecret string `env:"JWT_ACCESS_SECRET"`
	SharedSecret string `env:"JWT_SECRET"`

	// Token lifetimes
	AccessTokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL"       envDefault:"15m"`
	RefreshTokenTTLDays int           `env:"REFRESH_TOKEN_TTL_DAYS" envDefault:"14"`

	// Refresh cookie attributes
	CookieSameSite string `env:"REFRESH_COOKIE_SAMESITE" envDefault:"lax"`
	CookieSecure   bool   `env:"COOKIE_SECURE"           envDefault:"false"`

	// Cross-Origin Resource Sharing (comma-separated allow-list)
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:4173"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.JWTAccessSecret() == "" {
		return nil, fmt.Errorf("config: JWT_ACCESS_SECRET is required when JWT_SECRET is not set")
	}

	if cfg.RefreshTokenTTLDays < 1 || cfg.RefreshTokenTTLDays > 90 {
		return nil, fmt.Errorf("config: REFRESH_TOKEN_TTL_DAYS must be between 1 and 90")
	}

	// SameSite=None without Secure is rejected by modern browsers.
	if cfg.SameSite() == http.SameSiteNoneMode && !cfg.CookieSecureEffective() {
		return nil, fmt.Errorf("config: COOKIE_SECURE must be true when REFRESH_COOKIE_SAMESITE is \"none\"")
	}

	return cfg, nil
}

// JWTAccessSecret returns the effective access token signing secret, falling
// back to the shared JWT_SECRET when the split secret is absent.
func (c *Config) JWTAccessSecret() string {
	if c.AccessSecret != "" {
		return c.AccessSecret
	}
	return c.SharedSecret
}

// RefreshTokenTTL returns the refresh token lifetime as a duration.
func (c *Config) RefreshTokenTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTLDays) * 24 * time.Hour
}

// SameSite maps the configured cookie policy string to the stdlib constant.
func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(c.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// CookieSecureEffective reports whether the refresh cookie carries the Secure
// attribute. Production always does, regardless of the env flag.
func (c *Config) CookieSecureEffective() bool {
	return c.CookieSecure || c.IsProduction()
}

// AllowedOrigins returns the parsed CORS origin allow-list.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
