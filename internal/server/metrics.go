package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "quickfind"

// Outcome labels for RequestsTotal
const (
	outcomeOK        = "ok"
	outcomeError     = "error"
	outcomeAbandoned = "abandoned"
)

// Metrics holds the endpoint's Prometheus collectors. Each Metrics owns its
// registry so several servers (tests) can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	// RequestsTotal counts search requests by outcome (ok, error, abandoned)
	RequestsTotal *prometheus.CounterVec

	// InjectedDelaySeconds observes the artificial latency per answered request
	InjectedDelaySeconds prometheus.Histogram

	// ResultsReturned observes the number of matches per answered request
	ResultsReturned prometheus.Histogram
}

// NewMetrics creates and registers the endpoint metrics
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "requests_total",
			Help:      "Search requests by outcome.",
		}, []string{"outcome"}),
		InjectedDelaySeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "injected_delay_seconds",
			Help:      "Artificial latency added before answering.",
			Buckets:   prometheus.LinearBuckets(0.2, 0.1, 10),
		}),
		ResultsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "search",
			Name:      "results_returned",
			Help:      "Number of matches per answered search.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 40},
		}),
	}
}
