package rpc

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/calldata"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/registry"
	"github.com/NethermindEth/rosettanet/validator"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const emptyResult = "0x"

// CallArgs is the call object of eth_call. Gas and fee fields are accepted and
// ignored.
type CallArgs struct {
	From     *string         `json:"from,omitempty" validate:"omitempty,eth_addr"`
	To       string          `json:"to" validate:"required,eth_addr"`
	Gas      json.RawMessage `json:"gas,omitempty"`
	GasPrice json.RawMessage `json:"gasPrice,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
	Data     *string         `json:"data,omitempty" validate:"omitempty,hexdata"`
	Input    *string         `json:"input,omitempty" validate:"omitempty,hexdata"`
}

// calldata prefers input over data.
func (a *CallArgs) calldata() []byte {
	var s string
	switch {
	case a.Input != nil:
		s = *a.Input
	case a.Data != nil:
		s = *a.Data
	default:
		return nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil
	}
	return b
}

type functionCall struct {
	ContractAddress    *felt.Felt   `json:"contract_address"`
	EntryPointSelector *felt.Felt   `json:"entry_point_selector"`
	Calldata           []*felt.Felt `json:"calldata"`
}

type callParams struct {
	Request functionCall `json:"request"`
	BlockID BlockID      `json:"block_id"`
}

// Call executes a read only call against the native contract registered for args.To.
// Calls without a selector, to unregistered addresses or to selectors without a
// matching function return empty data, as Ethereum does for calls that reach no code.
func (h *Handler) Call(ctx context.Context, args CallArgs, block BlockID) (string, *jsonrpc.Error) {
	if err := validator.Validator().Struct(args); err != nil {
		return "", newError(jsonrpc.InvalidParams, "invalid call object: %v", err)
	}

	data := args.calldata()
	if len(data) < abi.SelectorLength {
		return emptyResult, nil
	}

	to := common.HexToAddress(args.To)
	target, err := h.registry.StarknetAddress(ctx, to)
	if err != nil {
		if errors.Is(err, registry.ErrNotRegistered) {
			h.log.Debugw("Call to unregistered address", "to", to)
			return emptyResult, nil
		}
		return "", translateError("resolve target address", err)
	}

	mapping, err := h.typeMapping(ctx, target, block)
	if err != nil {
		return "", translateError("fetch contract abi", err)
	}

	var sel abi.Selector
	copy(sel[:], data)
	fn, err := mapping.Match(sel)
	if err != nil {
		if errors.Is(err, abi.ErrSelectorNotFound) {
			h.log.Debugw("No function matches selector", "contract", target, "selector", sel)
			return emptyResult, nil
		}
		return "", newError(jsonrpc.InternalError, "%v", err)
	}
	h.log.Debugw("Matched function", "contract", target, "function", fn.EthereumSignature())

	decoded, err := h.decodeArguments(ctx, fn, sel, data[abi.SelectorLength:])
	if err != nil {
		return "", translateError("decode calldata", err)
	}

	var result []*felt.Felt
	if err = h.client.Call(ctx, "starknet_call", callParams{
		Request: functionCall{
			ContractAddress:    target,
			EntryPointSelector: fn.StarknetSelector(),
			Calldata:           decoded.Arguments(),
		},
		BlockID: block,
	}, &result); err != nil {
		h.log.Warnw("Native call failed", "contract", target, "function", fn.Function.Name, "err", err)
		return "", translateError("call contract", err)
	}

	out, err := calldata.EncodeWithAddressResolution(ctx, fn.Outputs, result, h.registry)
	if err != nil {
		return "", translateError("encode result", err)
	}
	return out, nil
}
