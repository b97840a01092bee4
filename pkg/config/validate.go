package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/quarzen/tradebook/pkg/startup"
)

// Validate checks the configuration for structural and semantic errors.
//
// Structural validation (ranges, enums, required fields) is driven by the
// `validate` struct tags. Semantic checks that span multiple fields
// (telemetry endpoint when tracing is on, database settings per backend)
// are performed explicitly.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Telemetry needs a collector endpoint when enabled
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no endpoint is configured")
	}

	// Database settings depend on the selected backend
	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	// Startup policy must parse (empty string falls back to strict)
	if cfg.Startup.Policy != "" {
		if _, err := startup.ParsePolicy(cfg.Startup.Policy); err != nil {
			return fmt.Errorf("invalid startup configuration: %w", err)
		}
	}

	return nil
}
