package config

import (
	"github.com/quarzen/tradebook/internal/logger"
	"github.com/quarzen/tradebook/pkg/metrics"
)

// InitializeMetrics sets up the global Prometheus registry and creates the
// metrics HTTP server according to the configuration.
//
// Returns nil when metrics are disabled; callers treat a nil server as
// "nothing to run". When enabled, instrumented code paths (API middleware,
// store) pick up the registry automatically.
func InitializeMetrics(cfg *Config) *metrics.Server {
	if !cfg.Metrics.Enabled {
		logger.Debug("Metrics collection disabled")
		return nil
	}

	metrics.InitRegistry()
	logger.Info("Metrics collection enabled", logger.KeyPort, cfg.Metrics.Port)

	return metrics.NewServer(cfg.Metrics.Port)
}
