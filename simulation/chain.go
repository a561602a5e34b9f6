// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package simulation runs an in-memory EVM chain for dry-run deployments.
package simulation

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/params"
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/common/sync2"
	"storj.io/dtradeploy/blockchain"
)

var (
	mon = monkit.Package()

	// Error is the simulation error class.
	Error = errs.Class("simulation")
)

// ChainID is the chain id of the simulated chain.
const ChainID = 1337

// Endpoint is the pseudo endpoint reported for the simulated chain.
const Endpoint = "simulated"

// Config is the configuration of the simulated chain.
type Config struct {
	BlockInterval time.Duration `help:"how often the simulated chain produces a block" default:"100ms"`
	Accounts      int           `help:"number of funded accounts, the first one deploys" default:"1"`
}

// Chain is an in-memory chain with pre-funded ephemeral accounts and a block producer.
//
// architecture: Chore
type Chain struct {
	log     *zap.Logger
	backend *simulated.Backend
	keys    []*ecdsa.PrivateKey
	started atomic.Bool

	Loop *sync2.Cycle
}

// New creates new simulated chain.
func New(log *zap.Logger, config Config) (*Chain, error) {
	if config.Accounts <= 0 {
		config.Accounts = 1
	}
	if config.BlockInterval <= 0 {
		config.BlockInterval = 100 * time.Millisecond
	}

	balance := new(big.Int).Mul(big.NewInt(1000), big.NewInt(params.Ether))

	alloc := types.GenesisAlloc{}
	keys := make([]*ecdsa.PrivateKey, 0, config.Accounts)
	for i := 0; i < config.Accounts; i++ {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, Error.Wrap(err)
		}
		keys = append(keys, key)
		alloc[crypto.PubkeyToAddress(key.PublicKey)] = types.Account{Balance: balance}
	}

	return &Chain{
		log:     log,
		backend: simulated.NewBackend(alloc),
		keys:    keys,
		Loop:    sync2.NewCycle(config.BlockInterval),
	}, nil
}

// Client returns chain client.
func (chain *Chain) Client() blockchain.Backend {
	return chain.backend.Client()
}

// Key returns the key of a funded account.
func (chain *Chain) Key(index int) *ecdsa.PrivateKey {
	return chain.keys[index]
}

// Accounts returns the addresses of funded accounts.
func (chain *Chain) Accounts() []blockchain.Address {
	var addrs []blockchain.Address
	for _, key := range chain.keys {
		addrs = append(addrs, crypto.PubkeyToAddress(key.PublicKey))
	}
	return addrs
}

// Transaction returns a transaction sent to the chain.
func (chain *Chain) Transaction(ctx context.Context, hash blockchain.Hash) (*types.Transaction, error) {
	tx, _, err := chain.backend.Client().TransactionByHash(ctx, hash)
	return tx, Error.Wrap(err)
}

// Commit seals pending transactions into a new block.
func (chain *Chain) Commit() blockchain.Hash {
	return chain.backend.Commit()
}

// Run produces blocks until ctx is cancelled.
func (chain *Chain) Run(ctx context.Context) (err error) {
	defer mon.Task()(&ctx)(&err)

	chain.started.Store(true)
	chain.log.Debug("block producer started")
	err = chain.Loop.Run(ctx, func(ctx context.Context) error {
		hash := chain.Commit()
		chain.log.Debug("block committed", zap.Stringer("hash", hash))
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close stops the block producer and releases the chain resources.
func (chain *Chain) Close() error {
	// Loop.Close waits for Run to finish, which never happens when it wasn't started.
	if chain.started.Load() {
		chain.Loop.Close()
	}
	return Error.Wrap(chain.backend.Close())
}
