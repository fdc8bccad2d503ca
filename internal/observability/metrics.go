package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the shop service's Prometheus instruments. Each Metrics
// value carries its own registry so tests get isolated counters. A nil
// *Metrics is a no-op everywhere.
type Metrics struct {
	registry *prometheus.Registry

	requests           *prometheus.CounterVec
	successfulRequests *prometheus.CounterVec
	itemsCreated       prometheus.Counter
	itemsDeleted       prometheus.Counter
	cartOperations     *prometheus.CounterVec
	requestLatency     prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "request_count",
			Help: "Total number of requests",
		}, []string{"method", "endpoint"}),
		successfulRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "successful_requests",
			Help: "Total number of successful requests",
		}, []string{"method", "endpoint"}),
		itemsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "items_created",
			Help: "Total number of items created",
		}),
		itemsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "items_deleted",
			Help: "Total number of items deleted",
		}),
		cartOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cart_operations",
			Help: "Total number of cart operations",
		}, []string{"operation"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "request_latency_seconds",
			Help: "Request latency in seconds",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.successfulRequests,
		m.itemsCreated,
		m.itemsDeleted,
		m.cartOperations,
		m.requestLatency,
	)
	return m
}

// Handler serves the registry in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one finished request. Requests that ended below 400
// also count as successful, mirroring the course service's middleware.
func (m *Metrics) ObserveRequest(method, endpoint string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, endpoint).Inc()
	if status < http.StatusBadRequest {
		m.successfulRequests.WithLabelValues(method, endpoint).Inc()
	}
	m.requestLatency.Observe(d.Seconds())
}

func (m *Metrics) ItemCreated() {
	if m == nil {
		return
	}
	m.itemsCreated.Inc()
}

func (m *Metrics) ItemDeleted() {
	if m == nil {
		return
	}
	m.itemsDeleted.Inc()
}

func (m *Metrics) CartOperation(op string) {
	if m == nil {
		return
	}
	m.cartOperations.WithLabelValues(op).Inc()
}
