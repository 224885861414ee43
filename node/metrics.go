package node

import (
	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func makeRosettanetMetrics(version string) {
	metrics.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "rosettanet",
		Name:        "info",
		Help:        "Information about the Rosettanet binary",
		ConstLabels: prometheus.Labels{"version": version},
	}))
}
