package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AuthAttempts counts signup and login outcomes.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Signup and login attempts by operation and result",
		},
		[]string{"operation", "result"},
	)

	// UpstreamRequests counts calls to the football data providers.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Requests to third-party football APIs by provider and outcome",
		},
		[]string{"provider", "status"},
	)

	// CacheLookups counts upstream cache hits and misses.
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Upstream response cache lookups by result",
		},
		[]string{"result"},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AuthAttempts, UpstreamRequests, CacheLookups)
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /api/posts/123/like -> /api/posts/{id}/like.
func NormalizePath(path string) string {
	if path == "" {
		return "/"
	}
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncAuthAttempt records one signup or login outcome (e.g. "ok", "conflict", "invalid_credentials").
func IncAuthAttempt(operation, result string) {
	AuthAttempts.WithLabelValues(operation, result).Inc()
}

// IncUpstream records one upstream call; status is the HTTP status or "error".
func IncUpstream(provider, status string) {
	UpstreamRequests.WithLabelValues(provider, status).Inc()
}

// IncCache records a cache "hit" or "miss".
func IncCache(result string) {
	CacheLookups.WithLabelValues(result).Inc()
}
