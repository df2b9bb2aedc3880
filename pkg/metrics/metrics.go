package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aurax"

// Metrics owns a private Prometheus registry and the service collectors.
// All methods are safe on a nil receiver so components can run without metrics.
type Metrics struct {
	registry *prometheus.Registry

	routeDecisions     *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	fallbacks          *prometheus.CounterVec
	retrievalFailures  prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		routeDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "route_decisions_total",
			Help:      "Routing decisions by selected backend.",
		}, []string{"backend"}),
		generationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "End-to-end generation latency by backend actually used.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"backend", "success"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_total",
			Help:      "Backend fallbacks taken after a primary failure.",
		}, []string{"from", "to"}),
		retrievalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retrieval_failures_total",
			Help:      "Context retrievals that degraded to empty context.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.routeDecisions,
		m.generationDuration,
		m.fallbacks,
		m.retrievalFailures,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveRoute(backend string) {
	if m == nil {
		return
	}
	m.routeDecisions.WithLabelValues(backend).Inc()
}

func (m *Metrics) ObserveGeneration(backend string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.generationDuration.WithLabelValues(backend, strconv.FormatBool(success)).Observe(d.Seconds())
}

func (m *Metrics) ObserveFallback(from, to string) {
	if m == nil {
		return
	}
	m.fallbacks.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveRetrievalFailure() {
	if m == nil {
		return
	}
	m.retrievalFailures.Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
