package starknet

import (
	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "starknet_client",
		Name:      "requests",
	}, []string{"method"})
	requestFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "starknet_client",
		Name:      "failed_requests",
	}, []string{"method"})
)

// registerMetrics is safe to call repeatedly; metrics.MustRegister skips collectors
// it already holds.
func registerMetrics() {
	metrics.MustRegister(requests, requestFailures)
}
