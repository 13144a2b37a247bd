package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// OptimizeTotal counts optimization requests by algorithm, mode and outcome.
	OptimizeTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_optimize_total", Help: "Route optimizations by algorithm, mode and outcome."},
		[]string{"algorithm", "mode", "outcome"},
	)
	// OptimizeDuration records end-to-end optimization time in seconds.
	OptimizeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "route_optimize_duration_seconds", Help: "Route optimization duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"algorithm", "mode"},
	)
	// ProviderCalls counts routing backend calls by operation and outcome.
	ProviderCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routing_provider_calls_total", Help: "Routing provider calls by operation and outcome."},
		[]string{"op", "outcome"},
	)
	// HTTPRequests counts requests by method, path and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the service collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(OptimizeTotal)
		Registry.MustRegister(OptimizeDuration)
		Registry.MustRegister(ProviderCalls)
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
