// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package contracts

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	setVestingMethod = "setVesting"
	setPriceMethod   = "setPrice"
)

// VestingVaultABI is the part of the vesting vault interface used for deployment.
const VestingVaultABI = `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[{"name":"token","type":"address"}]}
]`

// CrowdsaleABI is the part of the crowdsale interface used for deployment and wiring.
const CrowdsaleABI = `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[
		{"name":"token","type":"address"},
		{"name":"treasury","type":"address"},
		{"name":"cap","type":"uint256"}
	]},
	{"type":"function","name":"setVesting","stateMutability":"nonpayable","inputs":[
		{"name":"vault","type":"address"}
	],"outputs":[]},
	{"type":"function","name":"setPrice","stateMutability":"nonpayable","inputs":[
		{"name":"currency","type":"address"},
		{"name":"numerator","type":"uint256"},
		{"name":"denominator","type":"uint256"},
		{"name":"enabled","type":"bool"}
	],"outputs":[]}
]`

// ParseABI parses contract abi json.
func ParseABI(definition string) (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(definition))
	return parsed, Error.Wrap(err)
}

// VestingVault is a binding to a deployed vesting vault.
type VestingVault struct {
	address  common.Address
	contract *bind.BoundContract
}

// DeployVestingVault sends the vault creation transaction, the vault is bound to token.
func DeployVestingVault(opts *bind.TransactOpts, backend bind.ContractBackend, artifact *Artifact, token common.Address) (common.Address, *types.Transaction, *VestingVault, error) {
	address, tx, contract, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, backend, token)
	if err != nil {
		return common.Address{}, nil, nil, Error.New("deploy %s: %v", artifact.Name, err)
	}
	return address, tx, &VestingVault{address: address, contract: contract}, nil
}

// Address returns the vault contract address.
func (vault *VestingVault) Address() common.Address { return vault.address }

// Crowdsale is a binding to a deployed crowdsale.
type Crowdsale struct {
	address  common.Address
	contract *bind.BoundContract
}

// DeployCrowdsale sends the crowdsale creation transaction.
func DeployCrowdsale(opts *bind.TransactOpts, backend bind.ContractBackend, artifact *Artifact, token, treasury common.Address, supplyCap *big.Int) (common.Address, *types.Transaction, *Crowdsale, error) {
	address, tx, contract, err := bind.DeployContract(opts, artifact.ABI, artifact.Bytecode, backend, token, treasury, supplyCap)
	if err != nil {
		return common.Address{}, nil, nil, Error.New("deploy %s: %v", artifact.Name, err)
	}
	return address, tx, &Crowdsale{address: address, contract: contract}, nil
}

// NewCrowdsale binds an already deployed crowdsale.
func NewCrowdsale(address common.Address, artifact *Artifact, backend bind.ContractBackend) *Crowdsale {
	return &Crowdsale{
		address:  address,
		contract: bind.NewBoundContract(address, artifact.ABI, backend, backend, backend),
	}
}

// Address returns the crowdsale contract address.
func (sale *Crowdsale) Address() common.Address { return sale.address }

// SetVesting registers the vesting vault in the crowdsale.
func (sale *Crowdsale) SetVesting(opts *bind.TransactOpts, vault common.Address) (*types.Transaction, error) {
	tx, err := sale.contract.Transact(opts, setVestingMethod, vault)
	if err != nil {
		return nil, Error.New("%s: %v", setVestingMethod, err)
	}
	return tx, nil
}

// SetPrice sets the price quote for payments in currency; blockchain.NativeCurrency means the native coin.
func (sale *Crowdsale) SetPrice(opts *bind.TransactOpts, currency common.Address, numerator, denominator *big.Int, enabled bool) (*types.Transaction, error) {
	tx, err := sale.contract.Transact(opts, setPriceMethod, currency, numerator, denominator, enabled)
	if err != nil {
		return nil, Error.New("%s: %v", setPriceMethod, err)
	}
	return tx, nil
}
