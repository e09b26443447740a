// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"

	"slideforge/internal/ai"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings. ActiveProvider picks the default; every
	// provider with an API key is registered and runtime-switchable.
	ActiveProvider string
	Providers      map[string]ai.ProviderConfig
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "slideforge"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "slideforge"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		ActiveProvider: envOrDefault("AI_PROVIDER", "openai"),
		Providers: map[string]ai.ProviderConfig{
			"openai": {
				APIKey:     os.Getenv("OPENAI_API_KEY"),
				Model:      envOrDefault("OPENAI_MODEL", "gpt-4o"),
				ModelImage: envOrDefault("OPENAI_MODEL_IMAGE", "gpt-image-1"),
				BaseURL:    os.Getenv("OPENAI_BASE_URL"),
			},
			"gemini": {
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   envOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
				BaseURL: os.Getenv("GEMINI_BASE_URL"),
			},
			"claude": {
				APIKey:  os.Getenv("CLAUDE_API_KEY"),
				Model:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
				BaseURL: os.Getenv("CLAUDE_BASE_URL"),
			},
			"mistral": {
				APIKey:  os.Getenv("MISTRAL_API_KEY"),
				Model:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
				BaseURL: os.Getenv("MISTRAL_BASE_URL"),
			},
		},
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
