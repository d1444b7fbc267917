// Package observability holds feedprint's Prometheus metrics.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "feedprint"

// Computation kinds recorded by Computations.
const (
	KindPerTonne = "per_tonne"
	KindNational = "national"
	KindRanking  = "ranking"
	KindOrigins  = "origins"
)

// Metrics holds the Prometheus counters and histograms for the API server.
type Metrics struct {
	Requests        *prometheus.CounterVec   // labels: route, status
	RequestDuration *prometheus.HistogramVec // labels: route
	UnresolvedKeys  prometheus.Counter
	Computations    *prometheus.CounterVec // labels: kind
}

func newMetrics() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route template and status code.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route template.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		UnresolvedKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unresolved_blend_keys_total",
			Help:      "Blend keys that matched no ingredient and were skipped.",
		}),
		Computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "computations_total",
			Help:      "Footprint computations by kind.",
		}, []string{"kind"}),
	}
}

// NewMetrics creates all metrics and registers them with reg.
// It panics if a metric is already registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	reg.MustRegister(
		m.Requests,
		m.RequestDuration,
		m.UnresolvedKeys,
		m.Computations,
	)
	return m
}

// NewMetricsForTesting creates Metrics on a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() (*Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewMetrics(reg), reg
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveComputation counts one computation and the unresolved blend keys it skipped.
func (m *Metrics) ObserveComputation(kind string, unresolved int) {
	m.Computations.WithLabelValues(kind).Inc()
	if unresolved > 0 {
		m.UnresolvedKeys.Add(float64(unresolved))
	}
}
