package advisor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AdvisorRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_requests_total",
			Help: "Count of predict and recommend calls by operation, estimator and outcome.",
		},
		[]string{"operation", "estimator", "outcome"},
	)

	AdvisorRecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisor_recommendations_total",
			Help: "Count of emitted parameter adjustments by parameter and action.",
		},
		[]string{"parameter", "action"},
	)

	AdvisorCurrentCu = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "advisor_current_cu_percent",
			Help: "Last Cu % reading seen by the recommendation generator.",
		},
		[]string{"estimator"},
	)
)

func init() {
	prometheus.MustRegister(AdvisorRequestsTotal, AdvisorRecommendationsTotal, AdvisorCurrentCu)
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
