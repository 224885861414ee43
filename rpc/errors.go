package rpc

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/rosettanet/calldata"
	"github.com/NethermindEth/rosettanet/clients/starknet"
	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/registry"
)

var (
	ErrGasPriceNotSynced = &jsonrpc.Error{Code: jsonrpc.InternalError, Message: "Gas price is not synced yet"}
	ErrEmptyCalldata     = &jsonrpc.Error{Code: jsonrpc.InvalidParams, Message: "Transaction calldata is empty"}
)

func newError(code int, format string, args ...any) *jsonrpc.Error {
	return &jsonrpc.Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// translateError turns a failure of step into a JSON-RPC error. Native node errors keep
// their code and data.
func translateError(step string, err error) *jsonrpc.Error {
	var (
		nodeErr   *starknet.Error
		decodeErr *calldata.DecodeError
		encodeErr *calldata.EncodeError
	)
	switch {
	case errors.As(err, &nodeErr):
		rpcErr := &jsonrpc.Error{Code: nodeErr.Code, Message: step + ": " + nodeErr.Message}
		if len(nodeErr.Data) > 0 {
			rpcErr.Data = nodeErr.Data
		}
		return rpcErr
	case errors.As(err, &decodeErr):
		return &jsonrpc.Error{Code: decodeErr.Code, Message: step + ": " + decodeErr.Message}
	case errors.As(err, &encodeErr):
		return &jsonrpc.Error{Code: encodeErr.Code, Message: step + ": " + encodeErr.Message}
	case errors.Is(err, registry.ErrNotRegistered):
		return newError(jsonrpc.InvalidParams, "%s: %v", step, err)
	default:
		return newError(jsonrpc.InternalError, "%s: %v", step, err)
	}
}
