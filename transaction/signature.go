package transaction

import (
	"fmt"
	"math/big"

	"github.com/NethermindEth/rosettanet/core/felt"
)

// SignatureLength is the number of words the account contract expects in a signature.
const SignatureLength = 7

// Signature is an Ethereum ECDSA signature in the layout of the account contract:
// r.low, r.high, s.low, s.high, v, value.low, value.high.
type Signature struct {
	R          *big.Int
	S          *big.Int
	V          uint64
	Value      *big.Int
	Arrayified [SignatureLength]*felt.Felt
}

// NewSignature converts (r, s, v) and the transaction value. v is 27 or 28.
func NewSignature(r, s *big.Int, v uint64, value *big.Int) (*Signature, error) {
	if v != 27 && v != 28 {
		return nil, fmt.Errorf("signature v must be 27 or 28, got %d", v)
	}

	rLow, rHigh, err := felt.SplitU256(r)
	if err != nil {
		return nil, fmt.Errorf("signature r: %w", err)
	}
	sLow, sHigh, err := felt.SplitU256(s)
	if err != nil {
		return nil, fmt.Errorf("signature s: %w", err)
	}
	valueLow, valueHigh, err := felt.SplitU256(value)
	if err != nil {
		return nil, fmt.Errorf("value: %w", err)
	}

	return &Signature{
		R:     r,
		S:     s,
		V:     v,
		Value: value,
		Arrayified: [SignatureLength]*felt.Felt{
			rLow, rHigh, sLow, sHigh, new(felt.Felt).SetUint64(v), valueLow, valueHigh,
		},
	}, nil
}

// Felts returns the signature words in order.
func (s *Signature) Felts() []*felt.Felt {
	return s.Arrayified[:]
}
