package abi

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// SelectorLength is the byte length of an Ethereum function selector.
const SelectorLength = 4

var (
	ErrSelectorNotFound  = errors.New("no function matches the selector")
	ErrAmbiguousSelector = errors.New("selector matches more than one function")
	ErrInvalidSelector   = errors.New("selector must be 0x followed by 8 hex characters")
)

// Selector is the first four bytes of the keccak256 hash of an Ethereum signature.
type Selector [SelectorLength]byte

func EthereumSelector(signature string) Selector {
	var s Selector
	copy(s[:], crypto.Keccak256([]byte(signature)))
	return s
}

// ParseSelector parses the 0x prefixed hex form of a selector.
func ParseSelector(s string) (Selector, error) {
	var sel Selector
	if len(s) != 2+2*SelectorLength {
		return sel, ErrInvalidSelector
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return sel, fmt.Errorf("%w: %v", ErrInvalidSelector, err)
	}
	copy(sel[:], b)
	return sel, nil
}

func (s Selector) String() string {
	return hexutil.Encode(s[:])
}

// Match finds the function whose Ethereum selector equals sel. The same function
// reachable through several interfaces counts once; two functions with different
// native layouts behind one selector are ambiguous.
func (m *TypeMapping) Match(sel Selector) (*CallableFunction, error) {
	var match *CallableFunction
	for i := range m.functions {
		fn := &m.functions[i]
		if fn.EthereumSelector() != sel {
			continue
		}
		if match == nil {
			match = fn
			continue
		}
		if !match.sameLayout(fn) {
			return nil, fmt.Errorf("%w %s: %s and %s", ErrAmbiguousSelector, sel,
				qualifiedName(match), qualifiedName(fn))
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w %s", ErrSelectorNotFound, sel)
	}
	return match, nil
}

func qualifiedName(fn *CallableFunction) string {
	if fn.Function.Interface == "" {
		return fn.Function.Name
	}
	return fn.Function.Interface + "::" + fn.Function.Name
}
