package node

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/NethermindEth/rosettanet/rpc"
	"github.com/NethermindEth/rosettanet/service"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/rs/cors"
	"github.com/sourcegraph/conc"
)

type httpService struct {
	srv      *http.Server
	listener net.Listener
}

var _ service.Service = (*httpService)(nil)

func (h *httpService) Run(ctx context.Context) error {
	errCh := make(chan error)
	defer close(errCh)

	var wg conc.WaitGroup
	defer wg.Wait()
	wg.Go(func() {
		if err := h.srv.Serve(h.listener); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	})

	select {
	case <-ctx.Done():
		return h.srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

func newHTTPService(listener net.Listener, handler http.Handler) *httpService {
	return &httpService{
		srv: &http.Server{
			Addr:    listener.Addr().String(),
			Handler: handler,
			// ReadTimeout also sets ReadHeaderTimeout and IdleTimeout.
			ReadTimeout: 30 * time.Second,
		},
		listener: listener,
	}
}

func makeRPCOverHTTP(listener net.Listener, jsonrpcServer *jsonrpc.Server, gasPrice rpc.GasPriceReader,
	log utils.SimpleLogger,
) *httpService {
	readiness := NewReadinessHandlers(gasPrice)
	mux := http.NewServeMux()
	mux.Handle("/", jsonrpc.NewHTTP(jsonrpcServer, log))
	mux.HandleFunc("/live", readiness.HandleLive)
	mux.HandleFunc("/ready", readiness.HandleReady)
	return newHTTPService(listener, cors.AllowAll().Handler(mux))
}

func makeRPCOverWebsocket(listener net.Listener, jsonrpcServer *jsonrpc.Server, log utils.SimpleLogger) *httpService {
	mux := http.NewServeMux()
	mux.Handle("/", jsonrpc.NewWebsocket(jsonrpcServer, log))
	return newHTTPService(listener, mux)
}

func makeMetrics(listener net.Listener) *httpService {
	return newHTTPService(listener, metrics.Handler())
}

func makePPROF(listener net.Listener) *httpService {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return newHTTPService(listener, mux)
}

type ReadinessHandlers struct {
	gasPrice rpc.GasPriceReader
}

func NewReadinessHandlers(gasPrice rpc.GasPriceReader) *ReadinessHandlers {
	return &ReadinessHandlers{gasPrice: gasPrice}
}

func (h *ReadinessHandlers) HandleLive(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// HandleReady reports ready once the first gas price has been fetched.
func (h *ReadinessHandlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	if _, err := h.gasPrice.GasPrice(); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}
