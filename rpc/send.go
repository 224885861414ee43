package rpc

import (
	"context"
	"errors"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/gasprice"
	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/registry"
	"github.com/NethermindEth/rosettanet/transaction"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

type addInvokeParams struct {
	InvokeTransaction *transaction.InvokeTransaction `json:"invoke_transaction"`
}

type addInvokeResult struct {
	TransactionHash *felt.Felt `json:"transaction_hash"`
}

// SendRawTransaction translates a signed Ethereum transaction into an invoke
// transaction of the sender's native account and submits it. The sender's account
// is deployed first if needed. The native transaction hash is returned as a 32 byte
// hash.
func (h *Handler) SendRawTransaction(ctx context.Context, raw string) (string, *jsonrpc.Error) {
	encoded, err := hexutil.Decode(raw)
	if err != nil {
		return "", newError(jsonrpc.InvalidParams, "invalid raw transaction: %v", err)
	}
	tx := new(types.Transaction)
	if err = tx.UnmarshalBinary(encoded); err != nil {
		return "", newError(jsonrpc.InvalidParams, "invalid raw transaction: %v", err)
	}
	if err = transaction.Validate(tx); err != nil {
		return "", newError(jsonrpc.InvalidParams, "invalid transaction: %v", err)
	}
	sender, err := transaction.Sender(tx)
	if err != nil {
		return "", newError(jsonrpc.InvalidParams, "invalid transaction signature: %v", err)
	}

	data := tx.Data()
	if len(data) < abi.SelectorLength {
		return "", ErrEmptyCalldata
	}

	to := *tx.To()
	target, err := h.registry.StarknetAddress(ctx, to)
	if err != nil {
		if errors.Is(err, registry.ErrNotRegistered) {
			return "", newError(jsonrpc.InvalidParams, "target address %s is not registered", to)
		}
		return "", translateError("resolve target address", err)
	}

	mapping, err := h.typeMapping(ctx, target, BlockID{})
	if err != nil {
		return "", translateError("fetch contract abi", err)
	}

	var sel abi.Selector
	copy(sel[:], data)
	fn, err := mapping.Match(sel)
	if err != nil {
		if errors.Is(err, abi.ErrSelectorNotFound) {
			return "", newError(jsonrpc.InvalidParams, "no function of %s matches selector %s", to, sel)
		}
		return "", newError(jsonrpc.InternalError, "%v", err)
	}

	decoded, err := h.decodeArguments(ctx, fn, sel, data[abi.SelectorLength:])
	if err != nil {
		return "", translateError("decode calldata", err)
	}

	account, rpcErr := h.account(ctx, sender)
	if rpcErr != nil {
		return "", rpcErr
	}

	price, err := h.gasPrice.GasPrice()
	if err != nil {
		if errors.Is(err, gasprice.ErrNotSynced) {
			return "", ErrGasPriceNotSynced
		}
		return "", translateError("read gas price", err)
	}

	invoke, err := transaction.FromEthereum(tx, account, decoded, fn.EthereumSignature(), price.L1GasFri)
	if err != nil {
		return "", newError(jsonrpc.InvalidParams, "invalid transaction: %v", err)
	}

	var result addInvokeResult
	if err = h.client.Call(ctx, "starknet_addInvokeTransaction", addInvokeParams{InvokeTransaction: invoke}, &result); err != nil {
		h.log.Warnw("Failed to submit transaction", "sender", sender, "account", account, "err", err)
		return "", translateError("submit transaction", err)
	}
	if result.TransactionHash == nil {
		return "", newError(jsonrpc.InternalError, "submit transaction: node returned no transaction hash")
	}

	h.log.Debugw("Submitted transaction", "sender", sender, "account", account, "function", fn.EthereumSignature(),
		"hash", result.TransactionHash)
	return utils.AddHexPadding(result.TransactionHash.String(), 2*common.HashLength, true), nil
}

// account returns the native account of sender, deploying it when missing.
func (h *Handler) account(ctx context.Context, sender common.Address) (*felt.Felt, *jsonrpc.Error) {
	account, deployed, err := h.accounts.DeployedAccount(ctx, sender)
	if err != nil {
		return nil, translateError("check account deployment", err)
	}
	if deployed {
		return account, nil
	}

	account, err = h.accounts.Deploy(ctx, sender)
	if err != nil {
		return nil, translateError("resolve sender account", err)
	}
	return account, nil
}
