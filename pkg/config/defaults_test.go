package config

import (
	"testing"
	"time"

	"github.com/quarzen/tradebook/pkg/journal/store"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format text, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output stdout, got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("Expected default database type sqlite, got %q", cfg.Database.Type)
	}
	if cfg.API.Host != "0.0.0.0" {
		t.Errorf("Expected default API host 0.0.0.0, got %q", cfg.API.Host)
	}
	if cfg.Startup.Policy != "strict" {
		t.Errorf("Expected default startup policy strict, got %q", cfg.Startup.Policy)
	}
	if cfg.Admin.Username != "admin" {
		t.Errorf("Expected default admin username admin, got %q", cfg.Admin.Username)
	}
	if cfg.Telemetry.Endpoint != "localhost:4317" {
		t.Errorf("Expected default telemetry endpoint localhost:4317, got %q", cfg.Telemetry.Endpoint)
	}
	if cfg.Telemetry.SampleRate != 1.0 {
		t.Errorf("Expected default sample rate 1.0, got %v", cfg.Telemetry.SampleRate)
	}
}

func TestApplyDefaults_LevelNormalization(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Level = "debug"
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level normalized to DEBUG, got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Logging.Format = "json"
	cfg.ShutdownTimeout = 5 * time.Second
	cfg.Startup.Policy = "tolerant"
	ApplyDefaults(cfg)

	if cfg.Logging.Format != "json" {
		t.Errorf("Expected explicit format json to be preserved, got %q", cfg.Logging.Format)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected explicit shutdown timeout 5s to be preserved, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Startup.Policy != "tolerant" {
		t.Errorf("Expected explicit policy tolerant to be preserved, got %q", cfg.Startup.Policy)
	}
}

func TestApplyDefaults_MetricsPortOnlyWhenEnabled(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Metrics.Port != 0 {
		t.Errorf("Expected no metrics port when disabled, got %d", cfg.Metrics.Port)
	}

	cfg = &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)
	if cfg.Metrics.Port != 9090 {
		t.Errorf("Expected default metrics port 9090 when enabled, got %d", cfg.Metrics.Port)
	}
}

func TestApplyDefaults_ProfilingTypes(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if len(cfg.Telemetry.Profiling.ProfileTypes) == 0 {
		t.Fatal("Expected default profile types to be set")
	}
	if cfg.Telemetry.Profiling.Endpoint != "http://localhost:4040" {
		t.Errorf("Expected default profiling endpoint, got %q", cfg.Telemetry.Profiling.Endpoint)
	}
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("Expected database type sqlite, got %q", cfg.Database.Type)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected default config to validate, got: %v", err)
	}
}
