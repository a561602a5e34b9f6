// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package testeth

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"storj.io/dtradeploy/blockchain"
	netcfg "storj.io/dtradeploy/network"
	"storj.io/dtradeploy/simulation"
)

// Network - test Ethereum network backed by the simulated chain.
type Network struct {
	chain *simulation.Chain
}

// NewNetwork creates new test network with the given number of funded accounts.
func NewNetwork(log *zap.Logger, accounts int, blockInterval time.Duration) (*Network, error) {
	chain, err := simulation.New(log, simulation.Config{
		BlockInterval: blockInterval,
		Accounts:      accounts,
	})
	if err != nil {
		return nil, err
	}
	return &Network{chain: chain}, nil
}

// Chain returns the underlying simulated chain.
func (network *Network) Chain() *simulation.Chain {
	return network.chain
}

// Client returns chain client.
func (network *Network) Client() blockchain.Backend {
	return network.chain.Client()
}

// Accounts returns funded accounts, the first one is the deployer.
func (network *Network) Accounts() []blockchain.Address {
	return network.chain.Accounts()
}

// ChainID returns chain id of the network.
func (network *Network) ChainID() *big.Int {
	return big.NewInt(simulation.ChainID)
}

// Profile returns network profile signing with the account at index.
func (network *Network) Profile(index int) netcfg.Profile {
	return netcfg.Profile{Name: "testeth"}.
		WithEndpoint(simulation.Endpoint, simulation.ChainID).
		WithKey(network.chain.Key(index), netcfg.SourceEphemeral)
}

// TransactOptions creates transaction opts for the account at index.
func (network *Network) TransactOptions(ctx context.Context, index int) *bind.TransactOpts {
	opts, _ := bind.NewKeyedTransactorWithChainID(network.chain.Key(index), network.ChainID())
	opts.Context = ctx
	return opts
}

// NonceAt returns the number of transactions sent from the account at index.
func (network *Network) NonceAt(ctx context.Context, index int) (uint64, error) {
	return network.Client().PendingNonceAt(ctx, network.Accounts()[index])
}

// Transaction returns a transaction sent to the network.
func (network *Network) Transaction(ctx context.Context, hash blockchain.Hash) (*types.Transaction, error) {
	return network.chain.Transaction(ctx, hash)
}

// Run produces blocks until ctx is cancelled.
func (network *Network) Run(ctx context.Context) error {
	return network.chain.Run(ctx)
}

// Close releases network resources.
func (network *Network) Close() error {
	return network.chain.Close()
}
