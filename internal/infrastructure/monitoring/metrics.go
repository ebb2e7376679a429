package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status labels used across tool, bridge and download metrics
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec
	InFlight        prometheus.Gauge

	// Tool metrics
	ToolExecutions *prometheus.CounterVec
	ToolDuration   *prometheus.HistogramVec

	// Session objects by kind (presentation, document, workbook)
	ActiveObjects *prometheus.GaugeVec

	// Reads of office365:// resources
	ResourceReads *prometheus.CounterVec

	// Integration metrics
	AppleScriptCalls *prometheus.CounterVec
	ImageDownloads   *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests   int64            `json:"total_requests"`
	TotalErrors     int64            `json:"total_errors"`
	ToolExecutions  int64            `json:"tool_executions"`
	ToolFailures    int64            `json:"tool_failures"`
	ActiveObjects   map[string]int64 `json:"active_objects"`
	AverageLatency  float64          `json:"average_latency_seconds"`
	UptimeSeconds   float64          `json:"uptime_seconds"`
	totalDuration   float64
	requestDuration int64
}

// NewMetricsWith creates a metrics collector registered with reg.
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		snapshot:  MetricsSnapshot{ActiveObjects: make(map[string]int64)},

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "office_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "office_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "office_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "office_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "office_http_requests_in_flight",
				Help: "HTTP requests currently being served",
			},
		),

		// Tool metrics
		ToolExecutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "office_tool_executions_total",
				Help: "Total number of tool executions",
			},
			[]string{"service", "tool", "status"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "office_tool_duration_seconds",
				Help:    "Tool execution duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"service", "tool"},
		),

		ActiveObjects: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "office_active_objects",
				Help: "Number of open presentations, documents and workbooks",
			},
			[]string{"kind"},
		),

		ResourceReads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "office_resource_reads_total",
				Help: "Total number of office365:// resource reads",
			},
			[]string{"resource", "status"},
		),

		// Integration metrics
		AppleScriptCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "office_applescript_calls_total",
				Help: "Total number of AppleScript invocations",
			},
			[]string{"operation", "status"},
		),
		ImageDownloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "office_image_downloads_total",
				Help: "Total number of remote image downloads",
			},
			[]string{"status"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "office_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	m.snapshot.requestDuration++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordToolExecution records a tool call and its outcome
func (m *Metrics) RecordToolExecution(service, tool, status string, duration time.Duration) {
	m.ToolExecutions.WithLabelValues(service, tool, status).Inc()
	m.ToolDuration.WithLabelValues(service, tool).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.ToolExecutions++
	if status != StatusSuccess {
		m.snapshot.ToolFailures++
	}
	m.mu.Unlock()
}

// SetActiveObjects sets the number of open objects of a kind
func (m *Metrics) SetActiveObjects(kind string, count int) {
	m.ActiveObjects.WithLabelValues(kind).Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveObjects[kind] = int64(count)
	m.mu.Unlock()
}

// RecordResourceRead records one resource read
func (m *Metrics) RecordResourceRead(resource, status string) {
	m.ResourceReads.WithLabelValues(resource, status).Inc()
}

// RecordAppleScriptCall records a bridge invocation
func (m *Metrics) RecordAppleScriptCall(operation, status string) {
	m.AppleScriptCalls.WithLabelValues(operation, status).Inc()
}

// RecordImageDownload records a remote image fetch
func (m *Metrics) RecordImageDownload(status string) {
	m.ImageDownloads.WithLabelValues(status).Inc()
}

// Snapshot returns a copy of the current JSON-friendly values
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.ActiveObjects = make(map[string]int64, len(m.snapshot.ActiveObjects))
	for k, v := range m.snapshot.ActiveObjects {
		snap.ActiveObjects[k] = v
	}
	if snap.requestDuration > 0 {
		snap.AverageLatency = snap.totalDuration / float64(snap.requestDuration)
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
