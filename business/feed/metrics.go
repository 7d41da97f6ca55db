package feed

import "github.com/prometheus/client_golang/prometheus"

var (
	FeedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "feed_clients",
		Help: "Number of connected process replay clients.",
	})

	FeedMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_messages_total",
			Help: "Messages streamed to replay clients by type.",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(FeedClients, FeedMessagesTotal)
}
