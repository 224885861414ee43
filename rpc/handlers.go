// Package rpc serves the Ethereum JSON-RPC methods of the gateway by translating
// them into calls against the native node.
package rpc

import (
	"github.com/NethermindEth/rosettanet/jsonrpc"
	"github.com/NethermindEth/rosettanet/utils"
)

type Handler struct {
	client   TargetClient
	registry Registry
	accounts AccountProvisioner
	gasPrice GasPriceReader
	log      utils.SimpleLogger
	version  string
}

func New(client TargetClient, registry Registry, accounts AccountProvisioner, gasPrice GasPriceReader,
	log utils.SimpleLogger,
) *Handler {
	return &Handler{
		client:   client,
		registry: registry,
		accounts: accounts,
		gasPrice: gasPrice,
		log:      log,
		version:  "dev",
	}
}

// WithVersion sets the version reported by web3_clientVersion.
func (h *Handler) WithVersion(version string) *Handler {
	h.version = version
	return h
}

// ClientVersion returns the name and version of the gateway.
func (h *Handler) ClientVersion() (string, *jsonrpc.Error) {
	return "rosettanet/" + h.version, nil
}

// Methods lists the JSON-RPC methods served by h and the path they are served on.
func (h *Handler) Methods() ([]jsonrpc.Method, string) {
	return []jsonrpc.Method{
		{
			Name:    "eth_chainId",
			Handler: h.ChainID,
		},
		{
			Name:    "eth_protocolVersion",
			Handler: h.ProtocolVersion,
		},
		{
			Name:    "eth_gasPrice",
			Handler: h.GasPrice,
		},
		{
			Name:    "eth_blockNumber",
			Handler: h.BlockNumber,
		},
		{
			Name:    "eth_call",
			Params:  []jsonrpc.Parameter{{Name: "transaction"}, {Name: "block", Optional: true}},
			Handler: h.Call,
		},
		{
			Name:    "eth_sendRawTransaction",
			Params:  []jsonrpc.Parameter{{Name: "transaction"}},
			Handler: h.SendRawTransaction,
		},
		{
			Name:    "web3_clientVersion",
			Handler: h.ClientVersion,
		},
	}, "/"
}
