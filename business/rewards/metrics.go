package rewards

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keel_recommend_decisions_total",
			Help: "Count of recommendation decisions by arbitration outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RecommendDecisionsTotal)
}
