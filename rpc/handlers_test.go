package rpc_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/mocks"
	"github.com/NethermindEth/rosettanet/rpc"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const tokenABI = `[
  {"type": "struct", "name": "core::integer::u256", "members": [
    {"name": "low", "type": "core::integer::u128"},
    {"name": "high", "type": "core::integer::u128"}
  ]},
  {"type": "enum", "name": "core::bool", "variants": [
    {"name": "False", "type": "()"},
    {"name": "True", "type": "()"}
  ]},
  {"type": "function", "name": "balance_of", "state_mutability": "view",
    "inputs": [{"name": "account", "type": "core::starknet::contract_address::ContractAddress"}],
    "outputs": [{"type": "core::integer::u256"}]},
  {"type": "function", "name": "decimals", "state_mutability": "view",
    "inputs": [], "outputs": [{"type": "core::integer::u8"}]},
  {"type": "function", "name": "owner", "state_mutability": "view",
    "inputs": [], "outputs": [{"type": "core::starknet::contract_address::ContractAddress"}]},
  {"type": "function", "name": "transfer", "state_mutability": "external",
    "inputs": [
      {"name": "recipient", "type": "core::starknet::contract_address::ContractAddress"},
      {"name": "amount", "type": "core::integer::u256"}
    ],
    "outputs": [{"type": "core::bool"}]}
]`

var (
	token        = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	tokenNative  = felt.NewFromUint64(0x7e57)
	holder       = common.HexToAddress("0x5b38da6a701c568545dcfcb03fcb875f56beddc4")
	holderNative = felt.NewFromUint64(0x4011)
)

type testHandler struct {
	*rpc.Handler
	client   *mocks.MockTargetClient
	registry *mocks.MockRegistry
	accounts *mocks.MockAccountProvisioner
	gasPrice *mocks.MockGasPriceReader
}

func newTestHandler(t *testing.T) *testHandler {
	t.Helper()

	return newTestHandlerWithLogger(t, utils.NewNopZapLogger())
}

func newTestHandlerWithLogger(t *testing.T, log utils.SimpleLogger) *testHandler {
	t.Helper()

	ctrl := gomock.NewController(t)
	h := &testHandler{
		client:   mocks.NewMockTargetClient(ctrl),
		registry: mocks.NewMockRegistry(ctrl),
		accounts: mocks.NewMockAccountProvisioner(ctrl),
		gasPrice: mocks.NewMockGasPriceReader(ctrl),
	}
	h.Handler = rpc.New(h.client, h.registry, h.accounts, h.gasPrice, log)
	return h
}

// respond unmarshals raw into the result of a mocked call.
func respond(raw string) func(context.Context, string, any, any) error {
	return func(_ context.Context, _ string, _, result any) error {
		return json.Unmarshal([]byte(raw), result)
	}
}

// expectParams checks the JSON form of the call params before responding with raw.
func expectParams(t *testing.T, want, raw string) func(context.Context, string, any, any) error {
	t.Helper()
	return func(_ context.Context, _ string, params, result any) error {
		got, err := json.Marshal(params)
		if err != nil {
			return err
		}
		if !sameJSON(got, []byte(want)) {
			return errors.New("unexpected params " + string(got))
		}
		return json.Unmarshal([]byte(raw), result)
	}
}

func sameJSON(a, b []byte) bool {
	var va, vb any
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

// expectClass serves tokenABI, wrapped in a string the way Sierra classes carry it.
func (h *testHandler) expectClass(t *testing.T, address *felt.Felt) {
	t.Helper()

	class, err := json.Marshal(map[string]string{"abi": tokenABI})
	require.NoError(t, err)
	want := fmt.Sprintf(`{"block_id": "latest", "contract_address": %q}`, address)
	h.client.EXPECT().Call(gomock.Any(), "starknet_getClassAt", gomock.Any(), gomock.Any()).
		DoAndReturn(expectParams(t, want, string(class)))
}

func word(n uint64) string {
	return fmt.Sprintf("%064x", n)
}

func addressWord(addr common.Address) string {
	return fmt.Sprintf("%024x%x", 0, addr.Bytes())
}

func TestChainID(t *testing.T) {
	h := newTestHandler(t)

	id, rpcErr := h.ChainID()
	require.Nil(t, rpcErr)
	assert.Equal(t, "0x52535453", id)
}

func TestClientVersion(t *testing.T) {
	h := newTestHandler(t)

	version, rpcErr := h.WithVersion("v0.1.0").ClientVersion()
	require.Nil(t, rpcErr)
	assert.Equal(t, "rosettanet/v0.1.0", version)
}

func TestProtocolVersion(t *testing.T) {
	tests := map[string]struct {
		version string
		want    string
	}{
		"0.8.1":  {version: `"0.8.1"`, want: "0x51"},
		"0.7.1":  {version: `"0.7.1"`, want: "0x47"},
		"0.10.0": {version: `"0.10.0"`, want: "0x64"},
		"0.8":    {version: `"0.8"`, want: "0x8"},
		"0.13":   {version: `"0.13"`, want: "0xd"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHandler(t)
			h.client.EXPECT().Call(gomock.Any(), "starknet_specVersion", nil, gomock.Any()).
				DoAndReturn(respond(test.version))

			version, rpcErr := h.ProtocolVersion(context.Background())
			require.Nil(t, rpcErr)
			assert.Equal(t, test.want, version)
		})
	}

	for _, invalid := range []string{`"latest"`, `"v0.8.1"`, `"0.8.0-rc.1"`} {
		t.Run("invalid version "+invalid, func(t *testing.T) {
			h := newTestHandler(t)
			h.client.EXPECT().Call(gomock.Any(), "starknet_specVersion", nil, gomock.Any()).
				DoAndReturn(respond(invalid))

			_, rpcErr := h.ProtocolVersion(context.Background())
			require.NotNil(t, rpcErr)
			assert.Equal(t, jsonrpc.InternalError, rpcErr.Code)
		})
	}

	t.Run("node error", func(t *testing.T) {
		h := newTestHandler(t)
		h.client.EXPECT().Call(gomock.Any(), "starknet_specVersion", nil, gomock.Any()).
			Return(errors.New("connection refused"))

		_, rpcErr := h.ProtocolVersion(context.Background())
		require.NotNil(t, rpcErr)
		assert.Equal(t, jsonrpc.InternalError, rpcErr.Code)
		assert.Contains(t, rpcErr.Message, "connection refused")
	})
}

func TestBlockNumber(t *testing.T) {
	h := newTestHandler(t)
	h.client.EXPECT().Call(gomock.Any(), "starknet_blockNumber", nil, gomock.Any()).
		DoAndReturn(respond(`1234`))

	number, rpcErr := h.BlockNumber(context.Background())
	require.Nil(t, rpcErr)
	assert.Equal(t, "0x4d2", number)
}

func TestMethods(t *testing.T) {
	h := newTestHandler(t)
	server := jsonrpc.NewServer(1, utils.NewNopZapLogger())

	methods, path := h.Methods()
	assert.Equal(t, "/", path)

	names := make([]string, 0, len(methods))
	for _, method := range methods {
		require.NoError(t, server.RegisterMethod(method), method.Name)
		names = append(names, method.Name)
	}
	assert.Subset(t, names, []string{
		"eth_call", "eth_sendRawTransaction", "eth_chainId", "eth_protocolVersion", "eth_gasPrice", "eth_blockNumber",
	})
}
