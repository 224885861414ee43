package jsonrpc

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/NethermindEth/rosettanet/metrics"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/coder/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	wsReadLimit    = 32 * utils.Megabyte
	wsWriteTimeout = 5 * time.Second
	// control frame payloads are capped at 125 bytes
	closeReasonMaxBytes = 125
)

var wsRequests = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "rpc",
	Subsystem: "ws",
	Name:      "requests",
})

// Websocket serves every text message of a connection as a JSON-RPC request or
// batch, one at a time, answering on the same connection.
type Websocket struct {
	rpc *Server
	log utils.SimpleLogger
}

func NewWebsocket(rpc *Server, log utils.SimpleLogger) *Websocket {
	metrics.MustRegister(wsRequests)
	return &Websocket{rpc: rpc, log: log}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (ws *Websocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		ws.log.Errorw("Failed to upgrade connection", "err", err)
		return
	}
	conn.SetReadLimit(wsReadLimit)

	err = ws.serve(r.Context(), conn)
	if status := websocket.CloseStatus(err); status != -1 {
		ws.log.Debugw("Client closed websocket connection", "remote", r.RemoteAddr, "status", status)
		return
	}
	if errors.Is(err, context.Canceled) {
		conn.CloseNow() //nolint:errcheck
		return
	}

	ws.log.Warnw("Closing websocket connection", "remote", r.RemoteAddr, "err", err)
	reason := err.Error()
	if len(reason) > closeReasonMaxBytes {
		reason = reason[:closeReasonMaxBytes]
	}
	conn.Close(websocket.StatusInternalError, reason) //nolint:errcheck
}

func (ws *Websocket) serve(ctx context.Context, conn *websocket.Conn) error {
	for {
		_, msg, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		wsRequests.Inc()

		resp, err := ws.rpc.Handle(ctx, msg)
		if err != nil {
			return err
		}
		if resp == nil {
			continue
		}
		if err = ws.write(ctx, conn, resp); err != nil {
			return err
		}
	}
}

func (ws *Websocket) write(ctx context.Context, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, msg)
}
