package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// PromptsClassified counts classified prompts by resolved action.
	PromptsClassified = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vulniq",
			Name:      "prompts_classified_total",
			Help:      "Total number of prompts classified, labelled by resolved action",
		},
		[]string{"action"},
	)

	// UpstreamRequests counts outbound API calls by path and status code.
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vulniq",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream API requests",
		},
		[]string{"path", "status"},
	)

	// UpstreamRetries counts retried upstream calls by path.
	UpstreamRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vulniq",
			Name:      "upstream_retries_total",
			Help:      "Total number of retried upstream API requests",
		},
		[]string{"path"},
	)

	// UpstreamLatency observes upstream call duration in seconds by path.
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vulniq",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the global Prometheus registry.
// Safe to call more than once.
func InitMetrics() {
	once.Do(func() {
		prometheus.DefaultRegisterer.Register(PromptsClassified)
		prometheus.DefaultRegisterer.Register(UpstreamRequests)
		prometheus.DefaultRegisterer.Register(UpstreamRetries)
		prometheus.DefaultRegisterer.Register(UpstreamLatency)
	})
}
