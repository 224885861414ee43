package calldata_test

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/calldata"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireEncodeError(t *testing.T, err error) {
	t.Helper()

	var encodeErr *calldata.EncodeError
	require.ErrorAs(t, err, &encodeErr)
	assert.Equal(t, calldata.EncodeErrorCode, encodeErr.Code)
}

func TestRoundTrip(t *testing.T) {
	maxU256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	statusEnum := abi.ConvertibleType{Native: "lib::Status", Solidity: "uint8", Kind: abi.KindEnum, Variants: 3}

	tests := map[string]struct {
		types  []abi.ConvertibleType
		values []any
	}{
		"max uint256": {
			types:  nativeTypes(t, "core::integer::u256"),
			values: []any{maxU256},
		},
		"transfer": {
			types:  nativeTypes(t, contractAddress, "core::integer::u256"),
			values: []any{common.HexToAddress("0xdead"), big.NewInt(1_000_000)},
		},
		"integers": {
			types: nativeTypes(t, "core::integer::u8", "core::integer::u32", "core::integer::u128",
				"core::integer::i16", "core::integer::i128"),
			values: []any{
				uint8(8), uint32(32), new(big.Int).Lsh(big.NewInt(1), 100),
				int16(-300), new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127)),
			},
		},
		"bool enum": {
			types:  append(nativeTypes(t, "core::bool"), statusEnum),
			values: []any{false, uint8(2)},
		},
		"bytes31 and string": {
			types:  nativeTypes(t, "core::bytes_31::bytes31", "core::byte_array::ByteArray"),
			values: []any{[31]byte{0: 0x01, 30: 0xff}, strings.Repeat("rosettanet ", 7)},
		},
		"arrays": {
			types: []abi.ConvertibleType{arrayOf(t, contractAddress), arrayOf(t, "core::integer::u256")},
			values: []any{
				[]common.Address{common.HexToAddress("0x1"), common.HexToAddress("0x2")},
				[]*big.Int{maxU256, big.NewInt(0)},
			},
		},
		"empty array": {
			types:  []abi.ConvertibleType{arrayOf(t, "core::felt252")},
			values: []any{[]*big.Int{}},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			raw := ethEncode(t, test.types, test.values...)

			res, err := calldata.Decode(test.types, raw, transferSelector)
			require.NoError(t, err)
			require.Len(t, res.Directives(), len(res.Calldata())-1)

			encoded, err := calldata.Encode(test.types, res.Arguments())
			require.NoError(t, err)
			assert.Equal(t, raw, encoded)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Run("no outputs", func(t *testing.T) {
		data, err := calldata.Encode(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "0x", data)
	})

	t.Run("uint256 halves", func(t *testing.T) {
		types := nativeTypes(t, "core::integer::u256")
		data, err := calldata.Encode(types, []*felt.Felt{felt.NewFromUint64(1), felt.NewFromUint64(2)})
		require.NoError(t, err)
		assert.Equal(t, "0x"+strings.Repeat("0", 31)+"2"+strings.Repeat("0", 31)+"1", data)
	})

	t.Run("felt is a single word", func(t *testing.T) {
		top := new(felt.Felt).Neg(felt.NewFromUint64(1))
		data, err := calldata.Encode(nativeTypes(t, "core::felt252"), []*felt.Felt{top})
		require.NoError(t, err)

		want := new(big.Int).Sub(felt.Modulus(), big.NewInt(1))
		assert.Equal(t, hexutil.Encode(common.LeftPadBytes(want.Bytes(), 32)), data)
	})

	t.Run("bool", func(t *testing.T) {
		data, err := calldata.Encode(nativeTypes(t, "core::bool"), []*felt.Felt{felt.NewFromUint64(1)})
		require.NoError(t, err)
		assert.Equal(t, "0x"+strings.Repeat("0", 63)+"1", data)
	})
}

func TestEncodeErrors(t *testing.T) {
	one := felt.NewFromUint64(1)
	wide := feltFromHex(t, "0x100000000000000000000000000000000") // 2^128

	tests := map[string]struct {
		types  []abi.ConvertibleType
		result []*felt.Felt
	}{
		"missing word": {
			types:  nativeTypes(t, "core::integer::u256"),
			result: []*felt.Felt{one},
		},
		"leftover word": {
			types:  nativeTypes(t, "core::bool"),
			result: []*felt.Felt{one, one},
		},
		"words without outputs": {
			types:  nil,
			result: []*felt.Felt{one},
		},
		"uint256 half above 128 bits": {
			types:  nativeTypes(t, "core::integer::u256"),
			result: []*felt.Felt{wide, one},
		},
		"u8 overflow": {
			types:  nativeTypes(t, "core::integer::u8"),
			result: []*felt.Felt{felt.NewFromUint64(256)},
		},
		"i8 underflow": {
			types:  nativeTypes(t, "core::integer::i8"),
			result: []*felt.Felt{new(felt.Felt).Neg(felt.NewFromUint64(129))},
		},
		"bool out of range": {
			types:  nativeTypes(t, "core::bool"),
			result: []*felt.Felt{felt.NewFromUint64(2)},
		},
		"address above 160 bits": {
			types:  nativeTypes(t, contractAddress),
			result: []*felt.Felt{new(felt.Felt).Add(wide, new(felt.Felt).SetBytes(common.MaxAddress.Bytes()))},
		},
		"array length beyond result": {
			types:  []abi.ConvertibleType{arrayOf(t, "core::felt252")},
			result: []*felt.Felt{felt.NewFromUint64(3), one},
		},
		"string pending length": {
			types:  nativeTypes(t, "core::byte_array::ByteArray"),
			result: []*felt.Felt{felt.NewFromUint64(0), one, felt.NewFromUint64(31)},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := calldata.Encode(test.types, test.result)
			requireEncodeError(t, err)
		})
	}
}

func TestEncodeWithAddressResolution(t *testing.T) {
	types := nativeTypes(t, contractAddress, "core::integer::u256")
	target := feltFromHex(t, "0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7")
	eth := common.HexToAddress("0x1111111111111111111111111111111111111111")
	resolver := &fakeResolver{ethereum: map[felt.Felt]common.Address{*target: eth}}

	t.Run("registered", func(t *testing.T) {
		data, err := calldata.EncodeWithAddressResolution(context.Background(), types,
			[]*felt.Felt{target, felt.NewFromUint64(5), felt.NewFromUint64(0)}, resolver)
		require.NoError(t, err)
		assert.Equal(t, ethEncode(t, types, eth, big.NewInt(5)), data)
	})

	t.Run("resolver failure", func(t *testing.T) {
		_, err := calldata.EncodeWithAddressResolution(context.Background(), types,
			[]*felt.Felt{felt.NewFromUint64(9), felt.NewFromUint64(5), felt.NewFromUint64(0)}, resolver)
		require.ErrorIs(t, err, errNotRegistered)
	})
}
