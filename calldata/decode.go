// Package calldata translates Ethereum ABI encoded calldata into native words and
// native call results back into Ethereum return data.
package calldata

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/utils"
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Result is decoded calldata: the Ethereum selector followed by the native values
// of every argument.
type Result struct {
	Selector *felt.Felt
	Values   []Value
}

// NewResult returns the decoded calldata of a function without inputs.
func NewResult(sel abi.Selector) *Result {
	return &Result{Selector: new(felt.Felt).SetBytes(sel[:])}
}

// Arguments flattens the words of every value.
func (r *Result) Arguments() []*felt.Felt {
	words := make([]*felt.Felt, 0, len(r.Values))
	for _, v := range r.Values {
		words = append(words, v.Words()...)
	}
	return words
}

// Calldata returns the selector followed by the argument words.
func (r *Result) Calldata() []*felt.Felt {
	return append([]*felt.Felt{r.Selector}, r.Arguments()...)
}

// Directives returns one directive per argument word.
func (r *Result) Directives() []Directive {
	directives := make([]Directive, 0, len(r.Values))
	for _, v := range r.Values {
		directives = append(directives, v.Directives()...)
	}
	return directives
}

// Decode ABI decodes data, the argument part of Ethereum calldata, against types and
// converts every argument into native words.
func Decode(types []abi.ConvertibleType, data, selector string) (res *Result, err error) {
	if len(types) == 0 || utils.RemoveHexPrefix(data) == "" {
		return nil, decodeErrorf("types or data length is wrong on EVM calldata decoding")
	}
	sel, err := abi.ParseSelector(selector)
	if err != nil {
		return nil, decodeErrorf("selector length must be 10 on EVM calldata decoding")
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = nil, decodeErrorf("EVM calldata decoding failed: %v", r)
		}
	}()

	args, err := arguments(types)
	if err != nil {
		return nil, decodeErrorf("%v", err)
	}
	raw, err := hexutil.Decode(utils.AddHexPrefix(data))
	if err != nil {
		return nil, decodeErrorf("invalid calldata hex: %v", err)
	}
	unpacked, err := args.Unpack(raw)
	if err != nil {
		return nil, decodeErrorf("%v", err)
	}
	if len(unpacked) != len(types) {
		return nil, decodeErrorf("decoded %d values for %d types", len(unpacked), len(types))
	}

	res = NewResult(sel)
	for i, t := range types {
		values, err := toNative(t, unpacked[i])
		if err != nil {
			return nil, decodeErrorf("argument %d (%s): %v", i, t.Solidity, err)
		}
		res.Values = append(res.Values, values...)
	}
	return res, nil
}

func arguments(types []abi.ConvertibleType) (ethabi.Arguments, error) {
	args := make(ethabi.Arguments, 0, len(types))
	for _, t := range types {
		if !t.Supported() {
			return nil, fmt.Errorf("native type %s has no ethereum equivalent", t.Native)
		}
		typ, err := ethabi.NewType(t.Solidity, "", nil)
		if err != nil {
			return nil, err
		}
		args = append(args, ethabi.Argument{Type: typ})
	}
	return args, nil
}

func toNative(t abi.ConvertibleType, v any) ([]Value, error) {
	switch t.Kind {
	case abi.KindU256, abi.KindFelt:
		// every uint256 argument travels as a low/high pair
		b, err := toBig(v)
		if err != nil {
			return nil, err
		}
		low, high, err := felt.SplitU256(b)
		if err != nil {
			return nil, err
		}
		return []Value{Uint256Value(low, high)}, nil
	case abi.KindUint, abi.KindEnum:
		b, err := toBig(v)
		if err != nil {
			return nil, err
		}
		if t.Kind == abi.KindEnum && b.Cmp(big.NewInt(int64(t.Variants))) >= 0 {
			return nil, fmt.Errorf("variant %s out of range, enum has %d variants", b, t.Variants)
		}
		word, err := new(felt.Felt).SetBig(b)
		if err != nil {
			return nil, fmt.Errorf("%s does not fit in a felt: %w", b, err)
		}
		return []Value{PlainValue(word)}, nil
	case abi.KindInt:
		b, err := toBig(v)
		if err != nil {
			return nil, err
		}
		word, err := new(felt.Felt).SetBig(new(big.Int).Abs(b))
		if err != nil {
			return nil, err
		}
		if b.Sign() < 0 {
			word.Neg(word)
		}
		return []Value{PlainValue(word)}, nil
	case abi.KindBool:
		flag, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for bool", v)
		}
		word := new(felt.Felt)
		if flag {
			word.SetUint64(1)
		}
		return []Value{PlainValue(word)}, nil
	case abi.KindContractAddress, abi.KindEthAddress:
		addr, ok := v.(common.Address)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for address", v)
		}
		word := new(felt.Felt).SetBytes(addr.Bytes())
		if t.Kind == abi.KindContractAddress {
			return []Value{AddressValue(word)}, nil
		}
		return []Value{PlainValue(word)}, nil
	case abi.KindBytes31:
		b, ok := v.([31]byte)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for bytes31", v)
		}
		return []Value{PlainValue(new(felt.Felt).SetBytes(b[:]))}, nil
	case abi.KindByteArray:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected %T for string", v)
		}
		words := byteArrayWords([]byte(s))
		values := make([]Value, 0, len(words))
		for _, w := range words {
			values = append(values, PlainValue(w))
		}
		return values, nil
	case abi.KindArray:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, fmt.Errorf("unexpected %T for %s", v, t.Solidity)
		}
		values := []Value{PlainValue(new(felt.Felt).SetUint64(uint64(rv.Len())))}
		for i := range rv.Len() {
			elem, err := toNative(*t.Elem, rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			values = append(values, elem...)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("native type %s has no ethereum equivalent", t.Native)
	}
}

func toBig(v any) (*big.Int, error) {
	switch x := v.(type) {
	case *big.Int:
		return x, nil
	case uint8:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(x)), nil
	case uint64:
		return new(big.Int).SetUint64(x), nil
	case int8:
		return big.NewInt(int64(x)), nil
	case int16:
		return big.NewInt(int64(x)), nil
	case int32:
		return big.NewInt(int64(x)), nil
	case int64:
		return big.NewInt(x), nil
	default:
		return nil, fmt.Errorf("unexpected %T for integer", v)
	}
}
