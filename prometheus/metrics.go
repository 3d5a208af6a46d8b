package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/PrismarisTech/vine-lingo/pkg/config"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Request classification metrics
	ClassificationCounter prometheus.CounterVec

	// Snapshot rendering metrics
	SnapshotRendersCounter  prometheus.CounterVec
	SnapshotFallbackCounter prometheus.Counter

	// Preview image metrics
	ImageRendersCounter prometheus.CounterVec
	ImageRenderDuration prometheus.Histogram

	// Term Store metrics
	StoreRequestsCounter prometheus.CounterVec
	StoreRequestDuration prometheus.HistogramVec

	// Assistant metrics
	AssistantRequestsCounter prometheus.Counter
	AssistantErrorsCounter   prometheus.Counter

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Moderation metrics
	ModerationCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ClassificationCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_request_classifications_total",
			Help: "Total number of classified inbound requests by intent",
		},
		[]string{"intent"},
	)

	SnapshotRendersCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_snapshot_renders_total",
			Help: "Total number of snapshot documents rendered by kind",
		},
		[]string{"kind"},
	)

	SnapshotFallbackCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_snapshot_fallbacks_total",
			Help: "Total number of snapshot requests that degraded to the interactive app",
		},
	)

	ImageRendersCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_image_renders_total",
			Help: "Total number of preview images rendered by kind",
		},
		[]string{"kind"},
	)

	ImageRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_image_render_duration_seconds",
			Help:    "Duration of preview image rendering in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StoreRequestsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_store_requests_total",
			Help: "Total number of Term Store operations",
		},
		[]string{"operation", "outcome"},
	)

	StoreRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_store_request_duration_seconds",
			Help:    "Duration of Term Store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	AssistantRequestsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_assistant_requests_total",
			Help: "Total number of assistant chat requests",
		},
	)

	AssistantErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_assistant_errors_total",
			Help: "Total number of failed assistant chat requests",
		},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	ModerationCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_moderation_actions_total",
			Help: "Total number of moderation actions by outcome",
		},
		[]string{"action"},
	)
}

// TrackStoreOperation returns a function that records the duration of a
// Term Store operation
func TrackStoreOperation(operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StoreRequestDuration.WithLabelValues(operation).Observe(duration)
	}
}

// RecordClassification increments the counter for a classified intent
func RecordClassification(intent string) {
	ClassificationCounter.WithLabelValues(intent).Inc()
}

// RecordModeration increments the counter for a moderation action
func RecordModeration(action string) {
	ModerationCounter.WithLabelValues(action).Inc()
}
