// Package metrics provides Prometheus metrics for the teamforge service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Generation
	generations       *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	optimizerSwaps    prometheus.Histogram
	optimizerPasses   prometheus.Histogram
	finalScore        prometheus.Histogram
	perfectMatches    prometheus.Counter
	duplicateRequests prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Store
	matchesStored prometheus.Gauge
	storeLatency  *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "teamforge",
		subsystem:        "generator",
		histogramBuckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.generations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "generations_total",
		Help: "Generation calls by strategy and outcome",
	}, []string{"strategy", "outcome"})
	m.generationLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "generation_latency_milliseconds",
		Help:    "Wall time of one generation call in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"strategy"})
	m.optimizerSwaps = m.histogram("optimizer_swaps", "Swaps accepted per generation",
		[]float64{0, 1, 2, 5, 10, 25, 50, 100, 250})
	m.optimizerPasses = m.histogram("optimizer_passes", "Optimizer passes per generation",
		[]float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000})
	m.finalScore = m.histogram("final_score", "Imbalance score of generated partitions",
		[]float64{0, 0.5, 1, 2, 5, 10, 20, 50})
	m.perfectMatches = m.counter("perfect_matches_total", "Two-team results whose scorecard is perfect")
	m.duplicateRequests = m.counter("duplicate_requests_total", "Submissions answered from the idempotency cache")

	m.queueSize = m.gauge("queue_size", "Jobs waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum queue capacity")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Jobs dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Jobs rejected by a full or closed queue")

	m.workerCount = m.gauge("worker_count", "Configured workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Workers currently running a job")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds",
		"Time a worker spends on one job in milliseconds", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Jobs that failed in a worker")

	m.matchesStored = m.gauge("matches_stored", "Matches held by the store")
	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "store_latency_milliseconds",
		Help:    "Match store operation latency in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "errors_by_component_total",
		Help: "Errors by component and kind",
	}, []string{"component", "error_type"})
}

func since(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}

// RecordGeneration records one finished generation call.
func (m *Manager) RecordGeneration(strategy string, start time.Time, err error) {
	if !m.enabled {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.generations.WithLabelValues(strategy, outcome).Inc()
	m.generationLatency.WithLabelValues(strategy).Observe(since(start))
}

// RecordOptimizer records how much work the optimizer did and where it ended.
func (m *Manager) RecordOptimizer(passes, swaps int, score float64) {
	if !m.enabled {
		return
	}
	m.optimizerPasses.Observe(float64(passes))
	m.optimizerSwaps.Observe(float64(swaps))
	m.finalScore.Observe(score)
}

// RecordGeneration records one finished generation call on the global manager.
func RecordGeneration(strategy string, start time.Time, err error) {
	globalManager.RecordGeneration(strategy, start, err)
}

// RecordOptimizer records optimizer effort on the global manager.
func RecordOptimizer(passes, swaps int, score float64) {
	globalManager.RecordOptimizer(passes, swaps, score)
}

// RecordPerfectMatch increments the perfect scorecard counter.
func RecordPerfectMatch() {
	if globalManager.enabled {
		globalManager.perfectMatches.Inc()
	}
}

// RecordDuplicateRequest increments the idempotent replay counter.
func RecordDuplicateRequest() {
	if globalManager.enabled {
		globalManager.duplicateRequests.Inc()
	}
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// AddWorkerActive moves the active worker gauge by delta.
func AddWorkerActive(delta int) {
	globalManager.workerActiveCount.Add(float64(delta))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// UpdateMatchesStored sets the stored match gauge.
func UpdateMatchesStored(count int) {
	globalManager.matchesStored.Set(float64(count))
}

// RecordStoreLatency records a store operation.
func RecordStoreLatency(op string, start time.Time) {
	globalManager.storeLatency.WithLabelValues(op).Observe(since(start))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
