package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quarzen/tradebook/pkg/journal/store"
)

func TestLoad_DefaultConfig(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Write minimal config
	configContent := `
logging:
  level: "INFO"

database:
  type: sqlite

api:
  port: "8000"
  jwt:
    secret: "test-secret-key-for-testing-minimum-32-chars"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Load config
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults were applied
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.Port != "8000" {
		t.Errorf("Expected API port 8000, got %q", cfg.API.Port)
	}
	if cfg.Startup.Policy != "strict" {
		t.Errorf("Expected default startup policy 'strict', got %q", cfg.Startup.Policy)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config.
	// This allows users to run the server without a config file for quick testing.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}

	// Verify default config is returned
	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}

	if cfg.API.Port != "8000" {
		t.Errorf("Expected default API port 8000, got %q", cfg.API.Port)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("Expected default database type sqlite, got %q", cfg.Database.Type)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	// Write invalid YAML
	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Should return error
	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_StartupPolicy(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database:
  type: sqlite

startup:
  policy: tolerant
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Startup.Policy != "tolerant" {
		t.Errorf("Expected startup policy 'tolerant', got %q", cfg.Startup.Policy)
	}
}

func TestLoad_UnknownStartupPolicy(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
startup:
  policy: lenient
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error for unknown startup policy, got nil")
	}
}

func TestLoad_DurationStrings(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
shutdown_timeout: 45s

database:
  type: sqlite

api:
  read_timeout: 5s
  jwt:
    access_token_duration: 30m
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ShutdownTimeout != 45*time.Second {
		t.Errorf("Expected shutdown_timeout 45s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.ReadTimeout != 5*time.Second {
		t.Errorf("Expected read_timeout 5s, got %v", cfg.API.ReadTimeout)
	}
	if cfg.API.JWT.AccessTokenDuration != 30*time.Minute {
		t.Errorf("Expected access_token_duration 30m, got %v", cfg.API.JWT.AccessTokenDuration)
	}
}

func TestSaveConfig_Roundtrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Logging.Level = "DEBUG"
	cfg.Startup.Policy = "strict-trace"

	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	// File should be created with restricted permissions
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected file mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Logging.Level != "DEBUG" {
		t.Errorf("Expected level DEBUG after roundtrip, got %q", loaded.Logging.Level)
	}
	if loaded.Startup.Policy != "strict-trace" {
		t.Errorf("Expected policy strict-trace after roundtrip, got %q", loaded.Startup.Policy)
	}
}
