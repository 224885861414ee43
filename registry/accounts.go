package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/NethermindEth/rosettanet/core/felt"
	"github.com/NethermindEth/rosettanet/utils"
	"github.com/ethereum/go-ethereum/common"
)

// Accounts provisions the native account contract of Ethereum addresses. Accounts
// are deployed by a deployer service, which registers them in the registry.
type Accounts struct {
	registry *Registry
	deployer Caller
	log      utils.SimpleLogger
}

func NewAccounts(registry *Registry, deployer Caller, log utils.SimpleLogger) *Accounts {
	return &Accounts{registry: registry, deployer: deployer, log: log}
}

// DeployedAccount returns the registered account of addr. The bool is false when
// addr has no account yet.
func (a *Accounts) DeployedAccount(ctx context.Context, addr common.Address) (*felt.Felt, bool, error) {
	account, err := a.registry.StarknetAddress(ctx, addr)
	if err == nil {
		return account, true, nil
	}
	if errors.Is(err, ErrNotRegistered) {
		return nil, false, nil
	}
	return nil, false, err
}

// AccountAddress returns the address the account of addr has, or will have once deployed.
func (a *Accounts) AccountAddress(ctx context.Context, addr common.Address) (*felt.Felt, error) {
	account, err := a.registry.call(ctx, precalculateStarknetAccount, new(felt.Felt).SetBytes(addr.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("precalculate_starknet_account %s: %w", addr, err)
	}
	return account, nil
}

type deployParams struct {
	EthAddress string `json:"eth_address"`
}

type DeployResult struct {
	TransactionHash *felt.Felt `json:"transaction_hash"`
	ContractAddress *felt.Felt `json:"contract_address"`
}

// Deploy deploys the account of addr unless it is already registered, and returns
// the account address either way. A deployer reply without a contract address falls
// back to the precalculated one.
func (a *Accounts) Deploy(ctx context.Context, addr common.Address) (*felt.Felt, error) {
	account, err := a.registry.StarknetAddress(ctx, addr)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotRegistered) {
		return nil, err
	}

	var res DeployResult
	if err = a.deployer.Call(ctx, "rosettanet_deployAccount", deployParams{EthAddress: addr.Hex()}, &res); err != nil {
		return nil, fmt.Errorf("deploy account of %s: %w", addr, err)
	}
	account = res.ContractAddress
	if account == nil {
		if account, err = a.AccountAddress(ctx, addr); err != nil {
			return nil, err
		}
	}

	a.log.Infow("Deployed account", "ethAddress", addr.Hex(), "account", account,
		"txHash", res.TransactionHash)
	return account, nil
}
