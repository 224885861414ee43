// Package registry resolves addresses through the Rosettanet registry contract and
// provisions the native accounts of Ethereum addresses.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/NethermindEth/rosettanet/core/crypto"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/ethereum/go-ethereum/common"
)

var ErrNotRegistered = errors.New("address is not registered")

var (
	getStarknetAddress          = crypto.EntryPointSelector("get_starknet_address")
	getEthereumAddress          = crypto.EntryPointSelector("get_ethereum_address")
	precalculateStarknetAccount = crypto.EntryPointSelector("precalculate_starknet_account")
)

// Caller is a JSON-RPC endpoint.
type Caller interface {
	Call(ctx context.Context, method string, params, result any) error
}

type Registry struct {
	client  Caller
	address *felt.Felt
}

func New(client Caller, address *felt.Felt) *Registry {
	return &Registry{client: client, address: address}
}

type functionCall struct {
	ContractAddress    *felt.Felt   `json:"contract_address"`
	EntryPointSelector *felt.Felt   `json:"entry_point_selector"`
	Calldata           []*felt.Felt `json:"calldata"`
}

type callParams struct {
	Request functionCall `json:"request"`
	BlockID string       `json:"block_id"`
}

func (r *Registry) call(ctx context.Context, selector *felt.Felt, calldata ...*felt.Felt) (*felt.Felt, error) {
	var result []*felt.Felt
	err := r.client.Call(ctx, "starknet_call", callParams{
		Request: functionCall{
			ContractAddress:    r.address,
			EntryPointSelector: selector,
			Calldata:           calldata,
		},
		BlockID: "latest",
	}, &result)
	if err != nil {
		return nil, err
	}
	if len(result) != 1 {
		return nil, fmt.Errorf("registry returned %d words, expected 1", len(result))
	}
	return result[0], nil
}

// StarknetAddress returns the native address registered for an Ethereum address.
func (r *Registry) StarknetAddress(ctx context.Context, addr common.Address) (*felt.Felt, error) {
	target, err := r.call(ctx, getStarknetAddress, new(felt.Felt).SetBytes(addr.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("get_starknet_address %s: %w", addr, err)
	}
	if target.IsZero() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, addr)
	}
	return target, nil
}

// EthereumAddress returns the Ethereum address registered for a native address.
func (r *Registry) EthereumAddress(ctx context.Context, addr *felt.Felt) (common.Address, error) {
	eth, err := r.call(ctx, getEthereumAddress, addr)
	if err != nil {
		return common.Address{}, fmt.Errorf("get_ethereum_address %s: %w", addr, err)
	}
	if eth.IsZero() {
		return common.Address{}, fmt.Errorf("%w: %s", ErrNotRegistered, addr)
	}
	if eth.BitLen() > common.AddressLength*8 {
		return common.Address{}, fmt.Errorf("registry returned %s, which is not an ethereum address", eth)
	}
	raw := eth.Bytes()
	return common.BytesToAddress(raw[:]), nil
}
