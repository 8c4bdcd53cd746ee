// Package prometheus exposes the service metrics declared in common.
package prometheus

import (
	"net/http"

	"github.com/campusboard/backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry returns a registry holding the runtime collectors and every
// counter and histogram of the service.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, c := range common.PromCounters {
		registry.MustRegister(c)
	}

	for _, h := range common.PromHistograms {
		registry.MustRegister(h)
	}

	return registry
}

// NewHandler serves the metrics in the text exposition format.
func NewHandler() http.Handler {
	registry := NewRegistry()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
		Registry:      registry,
	})
}
