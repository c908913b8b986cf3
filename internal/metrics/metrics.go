package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry served on /metrics
	Registry = prometheus.NewRegistry()

	// Calculations counts sales tax calculations by provider and outcome
	Calculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "salestax_calculations_total", Help: "Sales tax calculations by provider and outcome."},
		[]string{"provider", "outcome"},
	)
	// ExternalCallDuration records tax service call latencies in seconds
	ExternalCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "salestax_external_call_duration_seconds", Help: "Tax service call duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"provider", "status"},
	)
	// HTTPRequests counts API requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)

	regOnce sync.Once
)

// RegisterDefault registers the collectors on Registry. Safe to call repeatedly.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(Calculations)
		Registry.MustRegister(ExternalCallDuration)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveCalculation counts one finished calculation
func ObserveCalculation(provider, outcome string) {
	Calculations.WithLabelValues(provider, outcome).Inc()
}

// ObserveExternalCall records the latency of one call to a tax service
func ObserveExternalCall(provider, status string, started time.Time) {
	ExternalCallDuration.WithLabelValues(provider, status).Observe(time.Since(started).Seconds())
}
