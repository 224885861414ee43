package jsonrpc

import (
	"errors"
	"io"
	"net/http"

	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/prometheus/client_golang/prometheus"
)

const MaxRequestBodySize = 10 * utils.Megabyte

var httpRequests = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "rpc",
	Subsystem: "http",
	Name:      "requests",
})

type HTTP struct {
	rpc *Server
	log utils.SimpleLogger
}

func NewHTTP(rpc *Server, log utils.SimpleLogger) *HTTP {
	metrics.MustRegister(httpRequests)
	return &HTTP{
		rpc: rpc,
		log: log,
	}
}

// ServeHTTP processes an incoming HTTP request
func (h *HTTP) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodGet {
		status := http.StatusNotFound
		if req.URL.Path == "/" {
			status = http.StatusOK
		}
		writer.WriteHeader(status)
		return
	} else if req.Method != http.MethodPost {
		writer.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	httpRequests.Inc()
	body, err := io.ReadAll(http.MaxBytesReader(writer, req.Body, MaxRequestBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writer.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		writer.WriteHeader(http.StatusBadRequest)
		return
	}

	resp, err := h.rpc.Handle(req.Context(), body)
	writer.Header().Set("Content-Type", "application/json")
	if err != nil {
		h.log.Errorw("Failed to build response", "err", err)
		writer.WriteHeader(http.StatusInternalServerError)
		return
	}
	if resp != nil {
		if _, err = writer.Write(resp); err != nil {
			h.log.Warnw("Failed writing response", "err", err)
		}
	}
}
