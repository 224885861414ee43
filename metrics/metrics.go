// Package metrics owns the prometheus registry of the process. Collectors are only
// registered once metrics are enabled.
package metrics

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	enabled  atomic.Bool
	registry = newRegistry()
)

func newRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewBuildInfoCollector())
	r.MustRegister(collectors.NewGoCollector())
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return r
}

func Enable() {
	enabled.Store(true)
}

func Enabled() bool {
	return enabled.Load()
}

// MustRegister registers collectors when metrics are enabled. Registering the same
// collector twice is a no-op; any other registration failure panics.
func MustRegister(cs ...prometheus.Collector) {
	if !Enabled() {
		return
	}
	for _, c := range cs {
		if err := registry.Register(c); err != nil {
			var alreadyRegistered prometheus.AlreadyRegisteredError
			if errors.As(err, &alreadyRegistered) {
				continue
			}
			panic(err)
		}
	}
}

// Handler serves the registry in the prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
