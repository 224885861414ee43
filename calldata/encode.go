package calldata

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"reflect"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/core/felt"
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var errNotEnoughWords = errors.New("not enough words in native result")

// cursor reads native words in order.
type cursor struct {
	words []*felt.Felt
	pos   int
}

func (c *cursor) next() (*felt.Felt, error) {
	if c.pos >= len(c.words) {
		return nil, errNotEnoughWords
	}
	w := c.words[c.pos]
	c.pos++
	return w, nil
}

// length reads a length prefix, which can never exceed the words left.
func (c *cursor) length() (int, error) {
	w, err := c.next()
	if err != nil {
		return 0, err
	}
	n, ok := w.Uint64()
	if !ok || n > uint64(c.remaining()) {
		return 0, fmt.Errorf("length %s exceeds the %d words left", w, c.remaining())
	}
	return int(n), nil
}

func (c *cursor) remaining() int {
	return len(c.words) - c.pos
}

// Encode ABI encodes native call results as Ethereum return data. Contract addresses
// must already fit in 160 bits.
func Encode(types []abi.ConvertibleType, result []*felt.Felt) (string, error) {
	return EncodeWithAddressResolution(context.Background(), types, result, nil)
}

// EncodeWithAddressResolution is Encode with contract addresses mapped to their
// Ethereum addresses through resolver.
func EncodeWithAddressResolution(ctx context.Context, types []abi.ConvertibleType, result []*felt.Felt,
	resolver AddressResolver,
) (data string, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = "", encodeErrorf("EVM return data encoding failed: %v", r)
		}
	}()

	args, err := arguments(types)
	if err != nil {
		return "", encodeErrorf("%v", err)
	}

	e := encoder{ctx: ctx, resolver: resolver, cursor: &cursor{words: result}}
	values := make([]any, 0, len(types))
	for i, t := range types {
		v, err := e.fromNative(t, args[i].Type)
		if err != nil {
			var resolveErr *resolveError
			if errors.As(err, &resolveErr) {
				return "", resolveErr.err
			}
			return "", encodeErrorf("output %d (%s): %v", i, t.Solidity, err)
		}
		values = append(values, v.Interface())
	}
	if left := e.cursor.remaining(); left != 0 {
		return "", encodeErrorf("native result has %d words left after encoding %d outputs", left, len(types))
	}

	packed, err := args.Pack(values...)
	if err != nil {
		return "", encodeErrorf("%v", err)
	}
	return hexutil.Encode(packed), nil
}

// resolveError carries resolver failures through the encoder untouched.
type resolveError struct {
	err error
}

func (e *resolveError) Error() string {
	return e.err.Error()
}

type encoder struct {
	ctx      context.Context
	resolver AddressResolver
	cursor   *cursor
}

func (e *encoder) fromNative(t abi.ConvertibleType, typ ethabi.Type) (reflect.Value, error) {
	switch t.Kind {
	case abi.KindU256:
		low, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		high, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		v, err := felt.JoinU256(low, high)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil
	case abi.KindFelt:
		// native results carry a felt as one word, the halves only exist on the way in
		word, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(word.BigInt(new(big.Int))), nil
	case abi.KindUint, abi.KindEnum:
		word, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		if word.BitLen() > typ.Size {
			return reflect.Value{}, fmt.Errorf("%s does not fit in %s", word, t.Solidity)
		}
		v := word.BigInt(new(big.Int))
		if t.Kind == abi.KindEnum && v.Cmp(big.NewInt(int64(t.Variants))) >= 0 {
			return reflect.Value{}, fmt.Errorf("variant %s out of range, enum has %d variants", v, t.Variants)
		}
		return integerValue(typ, v), nil
	case abi.KindInt:
		word, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		v := signed(word)
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		if v.Cmp(limit) >= 0 || v.Cmp(new(big.Int).Neg(limit)) < 0 {
			return reflect.Value{}, fmt.Errorf("%s does not fit in %s", v, t.Solidity)
		}
		return integerValue(typ, v), nil
	case abi.KindBool:
		word, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		if !word.IsZero() && !word.IsOne() {
			return reflect.Value{}, fmt.Errorf("%s is not a bool", word)
		}
		return reflect.ValueOf(word.IsOne()), nil
	case abi.KindContractAddress, abi.KindEthAddress:
		word, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		if t.Kind == abi.KindContractAddress && e.resolver != nil {
			addr, err := e.resolver.EthereumAddress(e.ctx, word)
			if err != nil {
				return reflect.Value{}, &resolveError{err: fmt.Errorf("resolve ethereum address of %s: %w", word, err)}
			}
			return reflect.ValueOf(addr), nil
		}
		if word.BitLen() > common.AddressLength*8 {
			return reflect.Value{}, fmt.Errorf("%s does not fit in an ethereum address", word)
		}
		raw := word.Bytes()
		return reflect.ValueOf(common.BytesToAddress(raw[:])), nil
	case abi.KindBytes31:
		word, err := e.cursor.next()
		if err != nil {
			return reflect.Value{}, err
		}
		if word.BitLen() > 8*bytesPerWord {
			return reflect.Value{}, fmt.Errorf("%s does not fit in bytes31", word)
		}
		raw := word.Bytes()
		var b [bytesPerWord]byte
		copy(b[:], raw[32-bytesPerWord:])
		return reflect.ValueOf(b), nil
	case abi.KindByteArray:
		b, err := readByteArray(e.cursor)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(string(b)), nil
	case abi.KindArray:
		n, err := e.cursor.length()
		if err != nil {
			return reflect.Value{}, err
		}
		slice := reflect.MakeSlice(typ.GetType(), n, n)
		for i := range n {
			elem, err := e.fromNative(*t.Elem, *typ.Elem)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			slice.Index(i).Set(elem)
		}
		return slice, nil
	default:
		return reflect.Value{}, fmt.Errorf("native type %s has no ethereum equivalent", t.Native)
	}
}

// signed interprets words above half the field prime as negative numbers.
func signed(word *felt.Felt) *big.Int {
	v := word.BigInt(new(big.Int))
	p := felt.Modulus()
	if v.Cmp(new(big.Int).Rsh(p, 1)) > 0 {
		v.Sub(v, p)
	}
	return v
}

// integerValue builds the Go value go-ethereum expects for an integer type.
func integerValue(typ ethabi.Type, v *big.Int) reflect.Value {
	rt := typ.GetType()
	if rt == reflect.TypeOf(v) {
		return reflect.ValueOf(v)
	}
	out := reflect.New(rt).Elem()
	if typ.T == ethabi.IntTy {
		out.SetInt(v.Int64())
	} else {
		out.SetUint(v.Uint64())
	}
	return out
}
