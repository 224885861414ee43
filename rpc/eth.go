package rpc

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/rosettanet/gasprice"
	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/transaction"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ChainID returns the chain id of the gateway.
func (h *Handler) ChainID() (string, *jsonrpc.Error) {
	return hexutil.EncodeUint64(transaction.ChainID), nil
}

// ProtocolVersion returns the spec version of the native node with the version
// separators removed, read as a decimal number and hex encoded: 0.8.1 becomes 0x51.
func (h *Handler) ProtocolVersion(ctx context.Context) (string, *jsonrpc.Error) {
	var version string
	if err := h.client.Call(ctx, "starknet_specVersion", nil, &version); err != nil {
		return "", translateError("read spec version", err)
	}

	if _, err := semver.NewVersion(version); err != nil {
		return "", newError(jsonrpc.InternalError, "invalid spec version %q: %v", version, err)
	}
	n, err := strconv.ParseUint(strings.ReplaceAll(version, ".", ""), 10, 64)
	if err != nil {
		return "", newError(jsonrpc.InternalError, "invalid spec version %q: %v", version, err)
	}
	return hexutil.EncodeUint64(n), nil
}

// GasPrice returns the cached L1 gas price in fri.
func (h *Handler) GasPrice() (string, *jsonrpc.Error) {
	price, err := h.gasPrice.GasPrice()
	if err != nil {
		if errors.Is(err, gasprice.ErrNotSynced) {
			return "", ErrGasPriceNotSynced
		}
		return "", translateError("read gas price", err)
	}
	return price.L1GasFri.String(), nil
}

// BlockNumber returns the number of the latest native block.
func (h *Handler) BlockNumber(ctx context.Context) (string, *jsonrpc.Error) {
	var number uint64
	if err := h.client.Call(ctx, "starknet_blockNumber", nil, &number); err != nil {
		return "", translateError("read block number", err)
	}
	return hexutil.EncodeUint64(number), nil
}
