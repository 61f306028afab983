package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/teacher-admin-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the API and the roster.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	persistDuration prometheus.Histogram
	persistFailures prometheus.Counter
	slotTransitions *prometheus.CounterVec
	rosterSize      prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_mutations_total",
		Help: "Committed roster mutations by operation",
	}, []string{"operation"})

	persistDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_persist_duration_seconds",
		Help:    "Latency of full-collection writes",
		Buckets: prometheus.DefBuckets,
	})

	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_persist_failures_total",
		Help: "Full-collection writes that failed",
	})

	slotTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_slot_transitions_total",
		Help: "Slot status changes caused by grid clicks",
	}, []string{"from", "to"})

	rosterSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_teachers",
		Help: "Number of teachers in the committed collection",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, mutations, persistDuration, persistFailures, slotTransitions, rosterSize, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		mutations:       mutations,
		persistDuration: persistDuration,
		persistFailures: persistFailures,
		slotTransitions: slotTransitions,
		rosterSize:      rosterSize,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObservePersist records one full-collection write.
func (m *MetricsService) ObservePersist(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.persistDuration.Observe(duration.Seconds())
	if err != nil {
		m.persistFailures.Inc()
	}
}

// RecordMutation counts a committed mutation and the resulting roster size.
func (m *MetricsService) RecordMutation(operation string, size int) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(operation).Inc()
	m.rosterSize.Set(float64(size))
}

// RecordSlotTransition counts a click-driven status change. An empty from means the slot was created.
func (m *MetricsService) RecordSlotTransition(from, to models.SlotStatus) {
	if m == nil {
		return
	}
	label := string(from)
	if label == "" {
		label = "empty"
	}
	m.slotTransitions.WithLabelValues(label, string(to)).Inc()
}
