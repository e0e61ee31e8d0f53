package config

import (
	"strings"
	"time"
)

const (
	// DefaultMaxCredentialAttempts bounds how often the operator is asked for
	// an API key before the session gives up.
	DefaultMaxCredentialAttempts = 5
	// DefaultRequestTimeout caps a single completion call.
	DefaultRequestTimeout = 60 * time.Second
)

// Config holds all runtime configuration for the client.
type Config struct {
	SettingsFile string
	ExportPath   string
	Copilot      bool
	Verbose      bool

	MaxCredentialAttempts int
	RequestTimeout        time.Duration

	APIKey  string
	BaseURL string
}

// DefaultConfig returns a baseline configuration without side effects.
func DefaultConfig() Config {
	return Config{
		MaxCredentialAttempts: DefaultMaxCredentialAttempts,
		RequestTimeout:        DefaultRequestTimeout,
	}
}

// Normalize sanitizes configuration values and applies defaults.
func Normalize(cfg Config) Config {
	cfg.SettingsFile = strings.TrimSpace(cfg.SettingsFile)
	cfg.ExportPath = strings.TrimSpace(cfg.ExportPath)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)

	// Zero means unlimited attempts.
	if cfg.MaxCredentialAttempts < 0 {
		cfg.MaxCredentialAttempts = 0
	}
	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}
	return cfg
}
