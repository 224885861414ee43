package rpc

import (
	"context"

	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/gasprice"
	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -destination=../mocks/mock_target_client.go -package=mocks github.com/NethermindEth/rosettanet/rpc TargetClient
type TargetClient interface {
	Call(ctx context.Context, method string, params, result any) error
}

// Registry maps addresses between the Ethereum and the native address spaces.
//
//go:generate mockgen -destination=../mocks/mock_registry.go -package=mocks github.com/NethermindEth/rosettanet/rpc Registry
type Registry interface {
	StarknetAddress(ctx context.Context, addr common.Address) (*felt.Felt, error)
	EthereumAddress(ctx context.Context, addr *felt.Felt) (common.Address, error)
}

//go:generate mockgen -destination=../mocks/mock_account_provisioner.go -package=mocks github.com/NethermindEth/rosettanet/rpc AccountProvisioner
type AccountProvisioner interface {
	DeployedAccount(ctx context.Context, addr common.Address) (*felt.Felt, bool, error)
	Deploy(ctx context.Context, addr common.Address) (*felt.Felt, error)
}

//go:generate mockgen -destination=../mocks/mock_gas_price_reader.go -package=mocks github.com/NethermindEth/rosettanet/rpc GasPriceReader
type GasPriceReader interface {
	GasPrice() (*gasprice.Price, error)
}
