package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ServerPort != DefaultServerPort {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, DefaultServerPort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.SessionTTL != DefaultSessionTTL {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, DefaultSessionTTL)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.DatabasePath != "" {
		t.Errorf("DatabasePath = %q, want empty (in-memory)", cfg.DatabasePath)
	}
	if cfg.SearchDebounce != DefaultSearchDebounce {
		t.Errorf("SearchDebounce = %v, want %v", cfg.SearchDebounce, DefaultSearchDebounce)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	// Arrange
	t.Setenv(EnvServerPort, "9000")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvShutdownTimeout, "5s")
	t.Setenv(EnvMetricsEnabled, "false")
	t.Setenv(EnvDatabasePath, "/tmp/itemhub.db")
	t.Setenv(EnvLogFile, "/tmp/itemhub.log")
	t.Setenv(EnvSessionTTL, "1h")
	t.Setenv(EnvBaseURL, "http://api.example.com")
	t.Setenv(EnvSearchDebounce, "250ms")

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ServerPort != 9000 {
		t.Errorf("ServerPort = %d, want 9000", cfg.ServerPort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
	if cfg.DatabasePath != "/tmp/itemhub.db" {
		t.Errorf("DatabasePath = %q, want /tmp/itemhub.db", cfg.DatabasePath)
	}
	if cfg.LogFile != "/tmp/itemhub.log" {
		t.Errorf("LogFile = %q, want /tmp/itemhub.log", cfg.LogFile)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("SessionTTL = %v, want 1h", cfg.SessionTTL)
	}
	if cfg.BaseURL != "http://api.example.com" {
		t.Errorf("BaseURL = %q, want the override", cfg.BaseURL)
	}
	if cfg.SearchDebounce != 250*time.Millisecond {
		t.Errorf("SearchDebounce = %v, want 250ms", cfg.SearchDebounce)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr error
	}{
		{name: "port out of range", env: EnvServerPort, value: "70000", wantErr: ErrInvalidServerPort},
		{name: "port zero", env: EnvServerPort, value: "0", wantErr: ErrInvalidServerPort},
		{name: "bad log level", env: EnvLogLevel, value: "verbose", wantErr: ErrInvalidLogLevel},
		{name: "negative shutdown timeout", env: EnvShutdownTimeout, value: "-1s", wantErr: ErrInvalidShutdownTimeout},
		{name: "negative session ttl", env: EnvSessionTTL, value: "-1h", wantErr: ErrInvalidSessionTTL},
		{name: "negative search debounce", env: EnvSearchDebounce, value: "-5ms", wantErr: ErrInvalidSearchDebounce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			t.Setenv(tt.env, tt.value)

			// Act
			_, err := Load()

			// Assert
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_UnparsableValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
	}{
		{name: "non-numeric port", env: EnvServerPort, value: "abc"},
		{name: "bad duration", env: EnvShutdownTimeout, value: "soon"},
		{name: "bad bool", env: EnvMetricsEnabled, value: "yep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)
			if _, err := Load(); err == nil {
				t.Error("Load() should fail on unparsable value")
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	cfg := &Config{ServerPort: 8080}
	if got := cfg.Address(); got != ":8080" {
		t.Errorf("Address() = %q, want :8080", got)
	}
}
