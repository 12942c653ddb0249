package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts HTTP requests by method, path, and status code.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scribex_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// generateDuration tracks end-to-end generation latency per provider,
	// measured from the backend call to the last streamed fragment.
	generateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scribex_generate_duration_seconds",
		Help:    "Time spent streaming one generation.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider"})

	// highlightSourceChars tracks the distribution of highlighted snippet sizes.
	highlightSourceChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scribex_highlight_source_chars",
		Help:    "Number of characters in highlight input code.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
)

// knownRoutes bounds the path label set. Unmatched paths reach the middleware
// too (404s pass through the chain), and labeling them verbatim would let
// arbitrary request targets grow the series without limit.
var knownRoutes = map[string]bool{
	"/api/generate":  true,
	"/api/highlight": true,
	"/api/health":    true,
	"/metrics":       true,
}

func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}
