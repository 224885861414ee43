package utils

import (
	"encoding"
	"encoding/json"
	"errors"

	"github.com/spf13/pflag"
)

var ErrUnknownNetwork = errors.New("unknown network (known: mainnet, sepolia, custom)")

// Network selects the Starknet network the gateway forwards to.
type Network int

// The following are necessary for Cobra and Viper, respectively, to unmarshal network
// CLI/config parameters properly.
var (
	_ pflag.Value              = (*Network)(nil)
	_ encoding.TextUnmarshaler = (*Network)(nil)
)

const (
	Mainnet Network = iota + 1
	Sepolia
	// Custom forwards to a node given by --rpc-url.
	Custom
)

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Sepolia:
		return "sepolia"
	case Custom:
		return "custom"
	default:
		// Should not happen.
		panic(ErrUnknownNetwork)
	}
}

func (n Network) MarshalYAML() (any, error) {
	return n.String(), nil
}

func (n *Network) MarshalJSON() ([]byte, error) {
	return json.RawMessage(`"` + n.String() + `"`), nil
}

func (n *Network) Set(s string) error {
	switch s {
	case "MAINNET", "mainnet":
		*n = Mainnet
	case "SEPOLIA", "sepolia", "testnet":
		*n = Sepolia
	case "CUSTOM", "custom":
		*n = Custom
	default:
		return ErrUnknownNetwork
	}
	return nil
}

func (n *Network) Type() string {
	return "Network"
}

func (n *Network) UnmarshalText(text []byte) error {
	return n.Set(string(text))
}

// RPCURL returns the public Starknet JSON-RPC endpoint of the network. Custom
// networks have none.
func (n Network) RPCURL() string {
	switch n {
	case Mainnet:
		return "https://starknet-mainnet.public.blastapi.io"
	case Sepolia:
		return "https://starknet-sepolia.public.blastapi.io"
	case Custom:
		return ""
	default:
		// Should not happen.
		panic(ErrUnknownNetwork)
	}
}
