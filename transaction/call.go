package transaction

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/rosettanet/calldata"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/ethereum/go-ethereum/common"
)

// shortStringLength is the number of bytes packed into one word of a string.
const shortStringLength = 31

// Call is the single call an account contract executes for an Ethereum transaction.
type Call struct {
	To                   common.Address
	Nonce                uint64
	MaxPriorityFeePerGas *big.Int
	MaxFeePerGas         *big.Int
	GasLimit             uint64
	Value                *big.Int
	Calldata             *calldata.Result
	// TargetFunction is the Ethereum signature of the called function.
	TargetFunction string
}

// Felts serialises the call in the order the account contract reads it.
func (c *Call) Felts() ([]*felt.Felt, error) {
	maxPriorityFee, err := new(felt.Felt).SetBig(c.MaxPriorityFeePerGas)
	if err != nil {
		return nil, fmt.Errorf("max priority fee per gas: %w", err)
	}
	maxFee, err := new(felt.Felt).SetBig(c.MaxFeePerGas)
	if err != nil {
		return nil, fmt.Errorf("max fee per gas: %w", err)
	}
	valueLow, valueHigh, err := felt.SplitU256(c.Value)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}

	data := c.Calldata.Calldata()
	directives := c.Calldata.Directives()
	target := ShortStrings(c.TargetFunction)

	words := make([]*felt.Felt, 0, 10+len(data)+len(directives)+len(target))
	words = append(words,
		new(felt.Felt).SetBytes(c.To.Bytes()),
		new(felt.Felt).SetUint64(c.Nonce),
		maxPriorityFee,
		maxFee,
		new(felt.Felt).SetUint64(c.GasLimit),
		valueLow,
		valueHigh,
	)

	words = append(words, new(felt.Felt).SetUint64(uint64(len(data))))
	words = append(words, data...)

	words = append(words, new(felt.Felt).SetUint64(uint64(len(directives))))
	for _, d := range directives {
		words = append(words, d.Felt())
	}

	words = append(words, new(felt.Felt).SetUint64(uint64(len(target))))
	return append(words, target...), nil
}

// ShortStrings splits s into 31 byte big-endian words.
func ShortStrings(s string) []*felt.Felt {
	b := []byte(s)
	words := make([]*felt.Felt, 0, (len(b)+shortStringLength-1)/shortStringLength)
	for start := 0; start < len(b); start += shortStringLength {
		end := min(start+shortStringLength, len(b))
		words = append(words, new(felt.Felt).SetBytes(b[start:end]))
	}
	return words
}
