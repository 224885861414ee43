package transaction_test

import (
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/NethermindEth/rosettanet/abi"
	"github.com/NethermindEth/rosettanet/calldata"
	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/transaction"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	chainID   = big.NewInt(transaction.ChainID)
	recipient = common.HexToAddress("0x1234567890abcdef1234567890abcdef12345678")
)

func transferCalldata(t *testing.T) *calldata.Result {
	t.Helper()

	res := calldata.NewResult(abi.EthereumSelector("transfer(address,uint256)"))
	res.Values = []calldata.Value{
		calldata.AddressValue(felt.NewFromUint64(0xdead)),
		calldata.Uint256Value(felt.NewFromUint64(100), felt.NewFromUint64(0)),
	}
	return res
}

func signedTx(t *testing.T, key *ecdsa.PrivateKey, inner types.TxData) *types.Transaction {
	t.Helper()

	tx, err := types.SignNewTx(key, types.LatestSignerForChainID(chainID), inner)
	require.NoError(t, err)
	return tx
}

func TestNewSignature(t *testing.T) {
	r := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(5))
	sig, err := transaction.NewSignature(r, big.NewInt(7), 28, big.NewInt(10))
	require.NoError(t, err)

	assert.Equal(t, []string{"0x5", "0x1", "0x7", "0x0", "0x1c", "0xa", "0x0"}, felt.Strings(sig.Felts()))
	assert.Len(t, sig.Felts(), transaction.SignatureLength)

	t.Run("invalid v", func(t *testing.T) {
		_, err := transaction.NewSignature(r, big.NewInt(7), 1, big.NewInt(10))
		assert.Error(t, err)
	})

	t.Run("r above 256 bits", func(t *testing.T) {
		_, err := transaction.NewSignature(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(7), 27, big.NewInt(0))
		assert.ErrorIs(t, err, felt.ErrU256Overflow)
	})
}

func TestShortStrings(t *testing.T) {
	assert.Empty(t, transaction.ShortStrings(""))
	assert.Equal(t, []string{"0x61"}, felt.Strings(transaction.ShortStrings("a")))

	words := transaction.ShortStrings("transfer(address,uint256)approve")
	require.Len(t, words, 2)
	assert.Equal(t, "0x7472616e7366657228616464726573732c75696e7432353629617070726f76", words[0].String())
	assert.Equal(t, "0x65", words[1].String())
}

func TestCallFelts(t *testing.T) {
	call := &transaction.Call{
		To:                   recipient,
		Nonce:                3,
		MaxPriorityFeePerGas: big.NewInt(1),
		MaxFeePerGas:         big.NewInt(2),
		GasLimit:             21000,
		Value:                new(big.Int).Lsh(big.NewInt(1), 128),
		Calldata:             transferCalldata(t),
		TargetFunction:       "transfer(address,uint256)",
	}

	words, err := call.Felts()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"0x1234567890abcdef1234567890abcdef12345678",
		"0x3", "0x1", "0x2", "0x5208", "0x0", "0x1",
		"0x4", "0xa9059cbb", "0xdead", "0x64", "0x0",
		"0x3", "0x2", "0x1", "0x0",
		"0x1", "0x7472616e7366657228616464726573732c75696e7432353629",
	}, felt.Strings(words))
}

func TestFromEthereum(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	sender := felt.NewFromUint64(0xacc)
	gasPrice := felt.NewFromUint64(1_000_000)

	t.Run("dynamic fee transaction", func(t *testing.T) {
		tx := signedTx(t, key, &types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     7,
			GasTipCap: big.NewInt(10),
			GasFeeCap: big.NewInt(20),
			Gas:       50000,
			To:        &recipient,
			Value:     big.NewInt(0),
			Data:      common.FromHex("0xa9059cbb"),
		})

		from, err := transaction.Sender(tx)
		require.NoError(t, err)
		assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), from)

		invoke, err := transaction.FromEthereum(tx, sender, transferCalldata(t), "transfer(address,uint256)", gasPrice)
		require.NoError(t, err)

		assert.Equal(t, transaction.TypeInvoke, invoke.Type)
		assert.Equal(t, "0x3", invoke.Version.String())
		assert.Equal(t, sender, invoke.SenderAddress)
		assert.Equal(t, "0x7", invoke.Nonce.String())
		assert.Equal(t, []string{"0xa", "0x14", "0xc350"}, felt.Strings(invoke.Calldata[2:5]))
		assert.Equal(t, "0xc350", invoke.ResourceBounds.L1Gas.MaxAmount.String())
		assert.Equal(t, gasPrice, invoke.ResourceBounds.L1Gas.MaxPricePerUnit)
		assert.True(t, invoke.ResourceBounds.L2Gas.MaxAmount.IsZero())

		_, _, s := tx.RawSignatureValues()
		require.Len(t, invoke.Signature, transaction.SignatureLength)
		v, _ := invoke.Signature[4].Uint64()
		assert.Contains(t, []uint64{27, 28}, v)
		sLow, _, err := felt.SplitU256(s)
		require.NoError(t, err)
		assert.Equal(t, sLow, invoke.Signature[2])

		raw, err := json.Marshal(invoke)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"type": "INVOKE",
			"version": "0x3",
			"sender_address": "0xacc",
			"calldata": `+mustJSON(t, felt.Strings(invoke.Calldata))+`,
			"signature": `+mustJSON(t, felt.Strings(invoke.Signature))+`,
			"nonce": "0x7",
			"resource_bounds": {
				"l1_gas": {"max_amount": "0xc350", "max_price_per_unit": "0xf4240"},
				"l1_data_gas": {"max_amount": "0x0", "max_price_per_unit": "0x0"},
				"l2_gas": {"max_amount": "0x0", "max_price_per_unit": "0x0"}
			},
			"tip": "0x0",
			"paymaster_data": [],
			"account_deployment_data": [],
			"nonce_data_availability_mode": "L1",
			"fee_data_availability_mode": "L1"
		}`, string(raw))
	})

	t.Run("legacy transaction uses gas price for both fees", func(t *testing.T) {
		tx := signedTx(t, key, &types.LegacyTx{
			Nonce:    1,
			GasPrice: big.NewInt(33),
			Gas:      21000,
			To:       &recipient,
			Value:    big.NewInt(5),
		})

		invoke, err := transaction.FromEthereum(tx, sender, transferCalldata(t), "transfer(address,uint256)", gasPrice)
		require.NoError(t, err)
		assert.Equal(t, []string{"0x21", "0x21"}, felt.Strings(invoke.Calldata[2:4]))

		v, _ := invoke.Signature[4].Uint64()
		assert.Contains(t, []uint64{27, 28}, v)
		assert.Equal(t, []string{"0x5", "0x0"}, felt.Strings(invoke.Signature[5:]))
	})

	t.Run("unsigned", func(t *testing.T) {
		tx := types.NewTx(&types.DynamicFeeTx{ChainID: chainID, To: &recipient, Value: big.NewInt(0)})
		_, err := transaction.FromEthereum(tx, sender, transferCalldata(t), "transfer(address,uint256)", gasPrice)
		assert.ErrorIs(t, err, transaction.ErrNotSigned)
	})

	t.Run("wrong chain", func(t *testing.T) {
		tx, err := types.SignNewTx(key, types.LatestSignerForChainID(big.NewInt(1)), &types.DynamicFeeTx{
			ChainID: big.NewInt(1),
			To:      &recipient,
			Value:   big.NewInt(0),
		})
		require.NoError(t, err)

		_, err = transaction.FromEthereum(tx, sender, transferCalldata(t), "transfer(address,uint256)", gasPrice)
		assert.ErrorIs(t, err, transaction.ErrChainIDMismatch)
	})

	t.Run("contract creation", func(t *testing.T) {
		tx := signedTx(t, key, &types.DynamicFeeTx{ChainID: chainID, Value: big.NewInt(0)})
		_, err := transaction.FromEthereum(tx, sender, transferCalldata(t), "transfer(address,uint256)", gasPrice)
		assert.ErrorIs(t, err, transaction.ErrContractCreation)
	})
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return string(raw)
}
