package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the Prometheus registry the HTTP middleware
// records into.
type MetricsHandler struct {
	registry *prometheus.Registry
}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler(registry *prometheus.Registry) *MetricsHandler {
	return &MetricsHandler{registry: registry}
}

// Handler returns the scrape endpoint.
func (h *MetricsHandler) Handler() http.Handler {
	return promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
}
