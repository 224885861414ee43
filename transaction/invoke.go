// Package transaction assembles native invoke transactions from signed Ethereum
// transactions.
package transaction

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/NethermindEth/rosettanet/calldata"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainID is the Ethereum chain id of the gateway, "RSTS" in ascii.
const ChainID = 0x52535453

const (
	TypeInvoke = "INVOKE"
	DAModeL1   = "L1"
)

var (
	ErrNotSigned        = errors.New("transaction is not signed")
	ErrChainIDMismatch  = errors.New("transaction chain id does not match")
	ErrContractCreation = errors.New("contract creation transactions are not supported")

	version3 = new(felt.Felt).SetUint64(3)
)

type ResourceBounds struct {
	MaxAmount       *felt.Felt `json:"max_amount"`
	MaxPricePerUnit *felt.Felt `json:"max_price_per_unit"`
}

type ResourceBoundsMapping struct {
	L1Gas     ResourceBounds `json:"l1_gas"`
	L1DataGas ResourceBounds `json:"l1_data_gas"`
	L2Gas     ResourceBounds `json:"l2_gas"`
}

// InvokeTransaction is a version 3 invoke transaction as accepted by
// starknet_addInvokeTransaction.
type InvokeTransaction struct {
	Type                  string                `json:"type"`
	Version               *felt.Felt            `json:"version"`
	SenderAddress         *felt.Felt            `json:"sender_address"`
	Calldata              []*felt.Felt          `json:"calldata"`
	Signature             []*felt.Felt          `json:"signature"`
	Nonce                 *felt.Felt            `json:"nonce"`
	ResourceBounds        ResourceBoundsMapping `json:"resource_bounds"`
	Tip                   *felt.Felt            `json:"tip"`
	PaymasterData         []*felt.Felt          `json:"paymaster_data"`
	AccountDeploymentData []*felt.Felt          `json:"account_deployment_data"`
	NonceDAMode           string                `json:"nonce_data_availability_mode"`
	FeeDAMode             string                `json:"fee_data_availability_mode"`
}

// NewInvokeTransaction wraps call, executed by the account at sender, in an invoke
// transaction. l1GasPrice bounds the price of every unit of the call's gas limit.
func NewInvokeTransaction(sender *felt.Felt, call *Call, sig *Signature, l1GasPrice *felt.Felt) (*InvokeTransaction, error) {
	words, err := call.Felts()
	if err != nil {
		return nil, err
	}

	return &InvokeTransaction{
		Type:          TypeInvoke,
		Version:       version3,
		SenderAddress: sender,
		Calldata:      words,
		Signature:     sig.Felts(),
		Nonce:         new(felt.Felt).SetUint64(call.Nonce),
		ResourceBounds: ResourceBoundsMapping{
			L1Gas: ResourceBounds{
				MaxAmount:       new(felt.Felt).SetUint64(call.GasLimit),
				MaxPricePerUnit: l1GasPrice,
			},
			L1DataGas: zeroBounds(),
			L2Gas:     zeroBounds(),
		},
		Tip:                   new(felt.Felt),
		PaymasterData:         []*felt.Felt{},
		AccountDeploymentData: []*felt.Felt{},
		NonceDAMode:           DAModeL1,
		FeeDAMode:             DAModeL1,
	}, nil
}

func zeroBounds() ResourceBounds {
	return ResourceBounds{MaxAmount: new(felt.Felt), MaxPricePerUnit: new(felt.Felt)}
}

// Validate checks the parts of a decoded Ethereum transaction the gateway relies on.
func Validate(tx *types.Transaction) error {
	if tx.To() == nil {
		return ErrContractCreation
	}
	_, r, s := tx.RawSignatureValues()
	if r.Sign() == 0 && s.Sign() == 0 {
		return ErrNotSigned
	}
	if tx.ChainId().Cmp(big.NewInt(ChainID)) != 0 {
		return fmt.Errorf("%w: got %s, want %#x", ErrChainIDMismatch, tx.ChainId(), ChainID)
	}
	return nil
}

// Sender recovers the signer of tx.
func Sender(tx *types.Transaction) (common.Address, error) {
	return types.Sender(types.LatestSignerForChainID(big.NewInt(ChainID)), tx)
}

// FromEthereum builds the invoke transaction the account at sender executes for tx.
// decoded holds the translated calldata of tx and targetFunction the Ethereum
// signature of the matched function.
func FromEthereum(tx *types.Transaction, sender *felt.Felt, decoded *calldata.Result, targetFunction string,
	l1GasPrice *felt.Felt,
) (*InvokeTransaction, error) {
	if err := Validate(tx); err != nil {
		return nil, err
	}

	sig, err := signature(tx)
	if err != nil {
		return nil, err
	}

	call := &Call{
		To:                   *tx.To(),
		Nonce:                tx.Nonce(),
		MaxPriorityFeePerGas: tx.GasTipCap(),
		MaxFeePerGas:         tx.GasFeeCap(),
		GasLimit:             tx.Gas(),
		Value:                tx.Value(),
		Calldata:             decoded,
		TargetFunction:       targetFunction,
	}
	return NewInvokeTransaction(sender, call, sig, l1GasPrice)
}

// signature normalises v to 27 + y parity for every transaction type.
func signature(tx *types.Transaction) (*Signature, error) {
	v, r, s := tx.RawSignatureValues()

	parity := new(big.Int).Set(v)
	if tx.Type() == types.LegacyTxType {
		if tx.Protected() {
			// v = chain_id * 2 + 35 + y_parity
			parity.Sub(parity, new(big.Int).Mul(tx.ChainId(), big.NewInt(2)))
			parity.Sub(parity, big.NewInt(35))
		} else {
			parity.Sub(parity, big.NewInt(27))
		}
	}
	if !parity.IsUint64() || parity.Uint64() > 1 {
		return nil, fmt.Errorf("invalid signature v %s", v)
	}
	return NewSignature(r, s, 27+parity.Uint64(), tx.Value())
}
