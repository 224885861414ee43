package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/calldata"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type getClassAtParams struct {
	BlockID         BlockID    `json:"block_id"`
	ContractAddress *felt.Felt `json:"contract_address"`
}

type contractClass struct {
	ABI json.RawMessage `json:"abi"`
}

// typeMapping fetches the ABI of the contract at address and derives its Ethereum view.
func (h *Handler) typeMapping(ctx context.Context, address *felt.Felt, block BlockID) (*abi.TypeMapping, error) {
	var class contractClass
	if err := h.client.Call(ctx, "starknet_getClassAt", getClassAtParams{
		BlockID:         block,
		ContractAddress: address,
	}, &class); err != nil {
		return nil, err
	}

	parsed, err := abi.Parse(class.ABI)
	if err != nil {
		return nil, fmt.Errorf("contract %s: %w", address, err)
	}

	mapping := abi.NewTypeMapping(parsed)
	if omitted := mapping.Omitted(); len(omitted) > 0 {
		h.log.Debugw("Functions without an Ethereum equivalent", "contract", address, "functions", omitted)
	}
	return mapping, nil
}

// decodeArguments translates the argument part of Ethereum calldata for fn.
func (h *Handler) decodeArguments(ctx context.Context, fn *abi.CallableFunction, sel abi.Selector, args []byte,
) (*calldata.Result, error) {
	if len(fn.Inputs) == 0 {
		return calldata.NewResult(sel), nil
	}
	return calldata.DecodeWithAddressResolution(ctx, fn.Inputs, hexutil.Encode(args), sel.String(), h.registry)
}
