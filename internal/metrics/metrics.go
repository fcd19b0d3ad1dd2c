// Package metrics provides Prometheus metrics for the composer: HTTP
// middleware plus counters for the engine's own activity.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	SessionsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composer_sessions_opened_total",
			Help: "Composition sessions opened, by origin",
		},
		[]string{"origin"},
	)

	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composer_submissions_total",
			Help: "Submission attempts, by outcome",
		},
		[]string{"outcome"},
	)

	AutocompleteQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "composer_autocomplete_queries_total",
			Help: "Autocomplete resolutions, by trigger",
		},
		[]string{"trigger"},
	)

	AutocompleteStaleDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "composer_autocomplete_stale_dropped_total",
			Help: "Autocomplete responses dropped because a newer keystroke superseded them",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns HTTP middleware that records Prometheus metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := newResponseWriter(w)
		next.ServeHTTP(wrapped, r)

		// Use chi's route pattern if available to avoid high cardinality
		path := r.URL.Path
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}
