package calldata

import (
	"github.com/NethermindEth/rosettanet/core/felt"
)

// Directive tells the account contract how to rebuild a calldata word.
type Directive uint8

const (
	// DirectivePlain words are passed through unchanged.
	DirectivePlain Directive = iota
	// DirectiveUint256 marks the low half of a split 256-bit integer. The high half
	// follows with DirectivePlain.
	DirectiveUint256
	// DirectiveAddress marks an address that belongs to the other address space.
	DirectiveAddress
)

func (d Directive) String() string {
	switch d {
	case DirectivePlain:
		return "plain"
	case DirectiveUint256:
		return "uint256"
	case DirectiveAddress:
		return "address"
	default:
		return "unknown"
	}
}

// Felt returns the wire form of the directive.
func (d Directive) Felt() *felt.Felt {
	return new(felt.Felt).SetUint64(uint64(d))
}

// Value is one decoded argument word group together with its directive. A
// DirectiveUint256 value always holds its low and high halves.
type Value struct {
	Directive Directive
	words     []*felt.Felt
}

func PlainValue(word *felt.Felt) Value {
	return Value{Directive: DirectivePlain, words: []*felt.Felt{word}}
}

func AddressValue(word *felt.Felt) Value {
	return Value{Directive: DirectiveAddress, words: []*felt.Felt{word}}
}

func Uint256Value(low, high *felt.Felt) Value {
	return Value{Directive: DirectiveUint256, words: []*felt.Felt{low, high}}
}

// Words returns the native words of the value.
func (v Value) Words() []*felt.Felt {
	return v.words
}

// Directives returns one directive per word.
func (v Value) Directives() []Directive {
	if v.Directive == DirectiveUint256 {
		return []Directive{DirectiveUint256, DirectivePlain}
	}
	return []Directive{v.Directive}
}
