package config

import (
	"path/filepath"
	"testing"
)

func TestInitConfigToPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := InitConfigToPath(path, false); err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load initialized config: %v", err)
	}

	// The generated JWT secret must be long enough for the API server
	if len(cfg.API.JWT.Secret) < 32 {
		t.Errorf("Expected generated JWT secret of at least 32 chars, got %d", len(cfg.API.JWT.Secret))
	}
}

func TestInitConfigToPath_RefusesOverwrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := InitConfigToPath(path, false); err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	// Second init without --force must fail
	if err := InitConfigToPath(path, false); err == nil {
		t.Fatal("Expected error when config already exists")
	}

	// With force it succeeds
	if err := InitConfigToPath(path, true); err != nil {
		t.Fatalf("Expected force overwrite to succeed, got: %v", err)
	}
}

func TestGenerateJWTSecret(t *testing.T) {
	a, err := generateJWTSecret()
	if err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}
	b, err := generateJWTSecret()
	if err != nil {
		t.Fatalf("Failed to generate secret: %v", err)
	}

	if len(a) != 64 {
		t.Errorf("Expected 64-char hex secret, got %d chars", len(a))
	}
	if a == b {
		t.Error("Expected distinct secrets on successive calls")
	}
}
