package calldata

import (
	"context"
	"fmt"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/ethereum/go-ethereum/common"
)

// AddressResolver maps addresses between the Ethereum and the native address spaces.
type AddressResolver interface {
	StarknetAddress(ctx context.Context, addr common.Address) (*felt.Felt, error)
	EthereumAddress(ctx context.Context, addr *felt.Felt) (common.Address, error)
}

// DecodeWithAddressResolution decodes like Decode and then replaces every contract
// address argument by its native address. Resolver failures are returned wrapped,
// not as a DecodeError.
func DecodeWithAddressResolution(ctx context.Context, types []abi.ConvertibleType, data, selector string,
	resolver AddressResolver,
) (*Result, error) {
	if err := checkSlots(types, data); err != nil {
		return nil, err
	}

	res, err := Decode(types, data, selector)
	if err != nil {
		return nil, err
	}

	for i := range res.Values {
		v := &res.Values[i]
		if v.Directive != DirectiveAddress {
			continue
		}
		raw := v.words[0].Bytes()
		eth := common.BytesToAddress(raw[:])
		target, err := resolver.StarknetAddress(ctx, eth)
		if err != nil {
			return nil, fmt.Errorf("resolve starknet address of %s: %w", eth, err)
		}
		v.words[0] = target
	}
	return res, nil
}

// checkSlots makes sure static parameter lists have a word for every slot they pack into.
func checkSlots(types []abi.ConvertibleType, data string) error {
	solidity := make([]string, 0, len(types))
	for _, t := range types {
		if t.Dynamic() {
			return nil
		}
		solidity = append(solidity, t.Solidity)
	}

	slots, err := Slots(solidity)
	if err != nil {
		return decodeErrorf("%v", err)
	}
	hexLen := len(utils.RemoveHexPrefix(data))
	if hexLen == 0 {
		return nil
	}
	if hexLen%64 != 0 || hexLen/64 < len(slots) {
		return decodeErrorf("calldata of %d hex characters does not cover %d slots", hexLen, len(slots))
	}
	return nil
}
