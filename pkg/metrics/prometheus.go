// Package metrics provides Prometheus metrics for the scout scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scout service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring job metrics.
	jobsStarted     prometheus.Counter
	jobsCompleted   prometheus.Counter
	jobsFailed      prometheus.Counter
	jobFallbacks    prometheus.Counter
	jobDuration     prometheus.Histogram
	jobProgress     prometheus.Gauge
	chunkLatency    prometheus.Histogram
	playersScored   prometheus.Counter

	// Query engine metrics.
	queryEvaluations prometheus.Counter
	queryMatches     prometheus.Counter
	queryLatency     prometheus.Histogram

	// Score cache metrics.
	cacheEntries prometheus.Gauge
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter

	// Roster metrics.
	rosterSize      prometheus.Gauge
	playersImported prometheus.Counter
	playersReplaced prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking by component.
	errorsByComponent *prometheus.CounterVec

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scout",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.jobsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_jobs_started_total",
		Help:      "Total number of batch scoring jobs dispatched",
	})

	m.jobsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_jobs_completed_total",
		Help:      "Total number of batch scoring jobs completed successfully",
	})

	m.jobsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_jobs_failed_total",
		Help:      "Total number of batch scoring jobs that failed on every compute path",
	})

	m.jobFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_job_fallbacks_total",
		Help:      "Total number of jobs recovered by the inline fallback backend",
	})

	m.jobDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_job_duration_milliseconds",
		Help:      "Histogram of end-to-end batch scoring job duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.jobProgress = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_job_progress_percent",
		Help:      "Progress of the most recent batch scoring job (0-100)",
	})

	m.chunkLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_chunk_latency_milliseconds",
		Help:      "Histogram of per-chunk scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.playersScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_scored_total",
		Help:      "Total number of player records scored across all jobs",
	})

	m.queryEvaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_evaluations_total",
		Help:      "Total number of query-tree evaluations against player records",
	})

	m.queryMatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_matches_total",
		Help:      "Total number of players that matched an evaluated query tree",
	})

	m.queryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "query_latency_milliseconds",
		Help:      "Histogram of full-roster filter pass latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.cacheEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_cache_entries",
		Help:      "Current number of cached (player, role) score entries",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_cache_hits_total",
		Help:      "Total number of score cache lookups that found an entry",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score_cache_misses_total",
		Help:      "Total number of score cache lookups that found nothing",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Current number of players held in the roster",
	})

	m.playersImported = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_imported_total",
		Help:      "Total number of player records accepted on import",
	})

	m.playersReplaced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_replaced_total",
		Help:      "Total number of imports that replaced an existing player by name",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component and error type",
		},
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Current heap memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Current number of goroutines",
	})
}

// Scoring job helpers.

// RecordJobStarted increments the dispatched-jobs counter.
func RecordJobStarted() {
	globalManager.jobsStarted.Inc()
}

// RecordJobCompleted increments the completed-jobs counter.
func RecordJobCompleted() {
	globalManager.jobsCompleted.Inc()
}

// RecordJobFailed increments the failed-jobs counter.
func RecordJobFailed() {
	globalManager.jobsFailed.Inc()
}

// RecordJobFallback increments the fallback-recovery counter.
func RecordJobFallback() {
	globalManager.jobFallbacks.Inc()
}

// RecordJobDuration records end-to-end job duration in milliseconds.
func RecordJobDuration(durationMs float64) {
	globalManager.jobDuration.Observe(durationMs)
}

// UpdateJobProgress sets the progress gauge for the current job.
func UpdateJobProgress(percent int) {
	globalManager.jobProgress.Set(float64(percent))
}

// RecordChunkLatency records per-chunk scoring latency in milliseconds.
func RecordChunkLatency(latencyMs float64) {
	globalManager.chunkLatency.Observe(latencyMs)
}

// RecordPlayersScored adds to the scored-players counter.
func RecordPlayersScored(count int) {
	globalManager.playersScored.Add(float64(count))
}

// Query helpers.

// RecordQueryEvaluation increments the evaluation counter.
func RecordQueryEvaluation() {
	globalManager.queryEvaluations.Inc()
}

// RecordQueryMatch increments the match counter.
func RecordQueryMatch() {
	globalManager.queryMatches.Inc()
}

// RecordQueryLatency records filter pass latency in milliseconds.
func RecordQueryLatency(latencyMs float64) {
	globalManager.queryLatency.Observe(latencyMs)
}

// Cache helpers.

// UpdateCacheEntries sets the cached-entries gauge.
func UpdateCacheEntries(count int) {
	globalManager.cacheEntries.Set(float64(count))
}

// RecordCacheHit increments the cache-hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache-miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// Roster helpers.

// UpdateRosterSize sets the roster-size gauge.
func UpdateRosterSize(count int) {
	globalManager.rosterSize.Set(float64(count))
}

// RecordPlayersImported adds to the imported-players counter.
func RecordPlayersImported(count int) {
	globalManager.playersImported.Add(float64(count))
}

// RecordPlayersReplaced adds to the replaced-players counter.
func RecordPlayersReplaced(count int) {
	globalManager.playersReplaced.Add(float64(count))
}

// HTTP helpers.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// Error helpers.

// RecordErrorByComponent increments the per-component error counter.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// System helpers.

// UpdateSystemMemoryUsage sets the heap-usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine-count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
