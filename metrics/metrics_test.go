package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()

	srv := httptest.NewServer(metrics.Handler())
	t.Cleanup(srv.Close)

	res, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMustRegister(t *testing.T) {
	disabled := prometheus.NewCounter(prometheus.CounterOpts{Name: "registered_while_disabled"})
	metrics.MustRegister(disabled)
	disabled.Inc()
	assert.NotContains(t, scrape(t), "registered_while_disabled")

	metrics.Enable()
	require.True(t, metrics.Enabled())

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "registered_while_enabled"})
	metrics.MustRegister(counter)
	assert.NotPanics(t, func() { metrics.MustRegister(counter) })
	counter.Inc()

	body := scrape(t)
	assert.Contains(t, body, "registered_while_enabled 1")
	assert.Contains(t, body, "go_goroutines")
}
