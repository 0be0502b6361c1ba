package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "keel_recommend_latency_seconds",
		Help:    "Latency of card recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendations served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "keel_recommend_requests_total",
		Help: "Total number of recommend requests",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
	)
}
