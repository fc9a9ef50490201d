package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for API client operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terrascope_requests_total",
		Help: "Total API requests by method and status",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "terrascope_request_duration_seconds",
		Help:    "API request duration in seconds by method",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"method"})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "terrascope_request_errors_total",
		Help: "Total API errors by error title",
	}, []string{"title"})

	rateLimitRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrascope_rate_limit_retries_total",
		Help: "Total retry attempts triggered by rate limiting",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrascope_cache_hits_total",
		Help: "Total static-resource cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "terrascope_cache_misses_total",
		Help: "Total static-resource cache misses",
	})
)
