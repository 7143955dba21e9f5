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
	if cfg.ProbePort != DefaultProbePort {
		t.Errorf("ProbePort = %d, want %d", cfg.ProbePort, DefaultProbePort)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %s, want %s", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, DefaultShutdownTimeout)
	}
	if cfg.MetricsEnabled != DefaultMetricsEnabled {
		t.Errorf("MetricsEnabled = %v, want %v", cfg.MetricsEnabled, DefaultMetricsEnabled)
	}
	if cfg.DefaultListLimit != DefaultListLimit {
		t.Errorf("DefaultListLimit = %d, want %d", cfg.DefaultListLimit, DefaultListLimit)
	}
	if cfg.MaxListLimit != DefaultMaxListLimit {
		t.Errorf("MaxListLimit = %d, want %d", cfg.MaxListLimit, DefaultMaxListLimit)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	// Arrange
	t.Setenv(EnvServerPort, "9999")
	t.Setenv(EnvProbePort, "0")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvShutdownTimeout, "5s")
	t.Setenv(EnvMetricsEnabled, "false")
	t.Setenv(EnvDefaultListLimit, "25")
	t.Setenv(EnvMaxListLimit, "50")

	// Act
	cfg, err := Load()

	// Assert
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.ServerPort != 9999 {
		t.Errorf("ServerPort = %d, want 9999", cfg.ServerPort)
	}
	if cfg.ProbePort != 0 {
		t.Errorf("ProbePort = %d, want 0", cfg.ProbePort)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled = true, want false")
	}
	if cfg.DefaultListLimit != 25 {
		t.Errorf("DefaultListLimit = %d, want 25", cfg.DefaultListLimit)
	}
	if cfg.MaxListLimit != 50 {
		t.Errorf("MaxListLimit = %d, want 50", cfg.MaxListLimit)
	}
}

func TestLoad_ParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{name: "bad server port", envVar: EnvServerPort, value: "not-a-port"},
		{name: "bad probe port", envVar: EnvProbePort, value: "8080x"},
		{name: "bad shutdown timeout", envVar: EnvShutdownTimeout, value: "soon"},
		{name: "bad metrics flag", envVar: EnvMetricsEnabled, value: "maybe"},
		{name: "bad default list limit", envVar: EnvDefaultListLimit, value: "many"},
		{name: "bad max list limit", envVar: EnvMaxListLimit, value: "lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			t.Setenv(tt.envVar, tt.value)

			// Act
			cfg, err := Load()

			// Assert
			if err == nil {
				t.Error("Load() expected error for malformed value")
			}
			if cfg != nil {
				t.Error("Load() should return nil config on error")
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ServerPort:       8080,
			ProbePort:        9090,
			LogLevel:         "info",
			ShutdownTimeout:  30 * time.Second,
			MetricsEnabled:   true,
			DefaultListLimit: 100,
			MaxListLimit:     1000,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(_ *Config) {},
			wantErr: nil,
		},
		{
			name:    "probe port disabled",
			mutate:  func(c *Config) { c.ProbePort = 0 },
			wantErr: nil,
		},
		{
			name:    "server port too low",
			mutate:  func(c *Config) { c.ServerPort = 0 },
			wantErr: ErrInvalidServerPort,
		},
		{
			name:    "server port too high",
			mutate:  func(c *Config) { c.ServerPort = 70000 },
			wantErr: ErrInvalidServerPort,
		},
		{
			name:    "probe port out of range",
			mutate:  func(c *Config) { c.ProbePort = 70000 },
			wantErr: ErrInvalidProbePort,
		},
		{
			name:    "probe port conflicts with server port",
			mutate:  func(c *Config) { c.ProbePort = c.ServerPort },
			wantErr: ErrProbePortConflict,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
		{
			name:    "non-positive shutdown timeout",
			mutate:  func(c *Config) { c.ShutdownTimeout = 0 },
			wantErr: ErrInvalidShutdownTimeout,
		},
		{
			name:    "non-positive default list limit",
			mutate:  func(c *Config) { c.DefaultListLimit = 0 },
			wantErr: ErrInvalidListLimit,
		},
		{
			name:    "max list limit below default",
			mutate:  func(c *Config) { c.MaxListLimit = 10 },
			wantErr: ErrInvalidMaxListLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cfg := valid()
			tt.mutate(cfg)

			// Act
			err := cfg.Validate()

			// Assert
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Address(t *testing.T) {
	// Arrange
	cfg := &Config{ServerPort: 8080, ProbePort: 9090}

	// Assert
	if got := cfg.Address(); got != ":8080" {
		t.Errorf("Address() = %s, want :8080", got)
	}
	if got := cfg.ProbeAddress(); got != ":9090" {
		t.Errorf("ProbeAddress() = %s, want :9090", got)
	}
}
