// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultServerPort      = 8080
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMetricsEnabled  = true
	DefaultSessionTTL      = 24 * time.Hour
	DefaultBaseURL         = "http://localhost:8080"
	DefaultSearchDebounce  = 0 * time.Millisecond
)

// Environment variable names.
const (
	EnvServerPort      = "APP_SERVER_PORT"
	EnvLogLevel        = "APP_LOG_LEVEL"
	EnvShutdownTimeout = "APP_SHUTDOWN_TIMEOUT"
	EnvMetricsEnabled  = "APP_METRICS_ENABLED"
	EnvDatabasePath    = "APP_DATABASE_PATH"
	EnvLogFile         = "APP_LOG_FILE"
	EnvSessionTTL      = "APP_SESSION_TTL"
	EnvBaseURL         = "APP_BASE_URL"
	EnvSearchDebounce  = "APP_SEARCH_DEBOUNCE"
)

// Config holds the application configuration. Server settings apply to the
// serve subcommand; BaseURL and SearchDebounce apply to the client.
type Config struct {
	ServerPort      int
	LogLevel        string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool

	// DatabasePath is the SQLite file backing the item store. Empty means
	// an in-memory store that does not survive restarts.
	DatabasePath string

	// LogFile, when set, directs interactive-client logs to a file. The
	// TUI owns the terminal, so without a file its logs are dropped.
	LogFile string

	// SessionTTL is how long login sessions stay valid.
	SessionTTL time.Duration

	// BaseURL is the API endpoint the client connects to.
	BaseURL string

	// SearchDebounce delays search-triggered fetches while typing.
	SearchDebounce time.Duration
}

// Validation errors.
var (
	ErrInvalidServerPort      = errors.New("server port must be between 1 and 65535")
	ErrInvalidLogLevel        = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be positive")
	ErrInvalidSessionTTL      = errors.New("session TTL must be positive")
	ErrInvalidBaseURL         = errors.New("base URL must not be empty")
	ErrInvalidSearchDebounce  = errors.New("search debounce must not be negative")
)

// Load reads configuration from environment variables with defaults.
// Environment variables have priority over default values.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      DefaultServerPort,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
		MetricsEnabled:  DefaultMetricsEnabled,
		SessionTTL:      DefaultSessionTTL,
		BaseURL:         DefaultBaseURL,
		SearchDebounce:  DefaultSearchDebounce,
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration values from environment variables.
func (c *Config) loadFromEnv() error {
	if val := os.Getenv(EnvServerPort); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvServerPort, err)
		}
		c.ServerPort = port
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = val
	}

	if val := os.Getenv(EnvShutdownTimeout); val != "" {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvShutdownTimeout, err)
		}
		c.ShutdownTimeout = timeout
	}

	if val := os.Getenv(EnvMetricsEnabled); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMetricsEnabled, err)
		}
		c.MetricsEnabled = enabled
	}

	if val := os.Getenv(EnvDatabasePath); val != "" {
		c.DatabasePath = val
	}

	if val := os.Getenv(EnvLogFile); val != "" {
		c.LogFile = val
	}

	if val := os.Getenv(EnvSessionTTL); val != "" {
		ttl, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvSessionTTL, err)
		}
		c.SessionTTL = ttl
	}

	if val := os.Getenv(EnvBaseURL); val != "" {
		c.BaseURL = val
	}

	if val := os.Getenv(EnvSearchDebounce); val != "" {
		debounce, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvSearchDebounce, err)
		}
		c.SearchDebounce = debounce
	}

	return nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return ErrInvalidServerPort
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return ErrInvalidLogLevel
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if c.SessionTTL <= 0 {
		return ErrInvalidSessionTTL
	}

	if c.BaseURL == "" {
		return ErrInvalidBaseURL
	}

	if c.SearchDebounce < 0 {
		return ErrInvalidSearchDebounce
	}

	return nil
}

// Address returns the server address in host:port format.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
