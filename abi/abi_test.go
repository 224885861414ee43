package abi_test

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadABI(t *testing.T, name string) *abi.ABI {
	t.Helper()

	raw, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)

	a, err := abi.Parse(raw)
	require.NoError(t, err)
	return a
}

func TestParse(t *testing.T) {
	t.Run("sierra abi", func(t *testing.T) {
		a := loadABI(t, "erc20.json")

		names := make([]string, 0, len(a.Functions))
		for _, fn := range a.Functions {
			names = append(names, fn.Name)
		}
		assert.Equal(t, []string{
			"name", "decimals", "total_supply", "balance_of", "transfer",
			"balanceOf", "transfer",
			"move_to", "owner", "set_status", "maybe", "walk", "batch", "multicall",
		}, names)

		assert.Equal(t, "openzeppelin::token::erc20::interface::IERC20", a.Functions[0].Interface)
		assert.Equal(t, "openzeppelin::token::erc20::interface::IERC20CamelOnly", a.Functions[5].Interface)
		assert.Empty(t, a.Functions[7].Interface)
		assert.Equal(t, "view", a.Functions[3].StateMutability)

		assert.Len(t, a.Structs, 6)
		assert.Len(t, a.Enums, 3)
	})

	t.Run("abi encoded as a json string", func(t *testing.T) {
		raw, err := os.ReadFile("testdata/erc20.json")
		require.NoError(t, err)
		quoted, err := json.Marshal(string(raw))
		require.NoError(t, err)

		a, err := abi.Parse(quoted)
		require.NoError(t, err)
		assert.Len(t, a.Functions, 14)
	})

	t.Run("cairo 0 abi", func(t *testing.T) {
		a := loadABI(t, "cairo0.json")

		require.Len(t, a.Functions, 3)
		assert.Equal(t, "balanceOf", a.Functions[0].Name)
		assert.Equal(t, []abi.Variable{{Name: "balance", Type: "Uint256"}}, a.Functions[0].Outputs)
		require.Len(t, a.Structs, 1)
		assert.Equal(t, "Uint256", a.Structs[0].Name)
	})

	t.Run("empty abi", func(t *testing.T) {
		for _, raw := range []string{"", "null", `""`} {
			_, err := abi.Parse([]byte(raw))
			assert.ErrorIs(t, err, abi.ErrEmptyABI, raw)
		}
	})

	t.Run("malformed abi", func(t *testing.T) {
		_, err := abi.Parse([]byte(`{"type": "function"}`))
		assert.Error(t, err)

		_, err = abi.Parse([]byte(`[{"type": "function", "inputs": 1}]`))
		assert.Error(t, err)
	})
}
