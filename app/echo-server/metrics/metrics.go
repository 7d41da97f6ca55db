package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var BuildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "advisor_build_info",
	Help: "Constant 1, labelled with the running version and estimator",
}, []string{"version", "estimator"})

func init() {
	prometheus.MustRegister(BuildInfo)
}

func Init(version, estimator string) {
	BuildInfo.Reset()
	BuildInfo.WithLabelValues(version, estimator).Set(1)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
