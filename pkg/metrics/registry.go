// Package metrics provides Prometheus metrics collection for the journal
// server.
//
// Metrics are opt-in: when InitRegistry has not been called, all constructors
// return nil collectors and instrumented code paths run with zero overhead.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	registry *prometheus.Registry
	initOnce sync.Once
)

// InitRegistry creates the global Prometheus registry with the standard
// process and Go runtime collectors. Safe to call multiple times; only the
// first call has effect.
func InitRegistry() {
	initOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	})
}

// IsEnabled returns whether metrics collection is enabled.
func IsEnabled() bool {
	return registry != nil
}

// GetRegistry returns the global registry, or nil when metrics are disabled.
func GetRegistry() *prometheus.Registry {
	return registry
}
