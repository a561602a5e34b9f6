// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package deploy

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"storj.io/dtradeploy/blockchain"
	"storj.io/dtradeploy/contracts"
)

// EthereumChain implements Chain on an EVM compatible network using compiled artifacts.
type EthereumChain struct {
	log       *zap.Logger
	backend   blockchain.Backend
	artifacts *contracts.Artifacts
	opts      *bind.TransactOpts

	waitTimeout  time.Duration
	pollInterval time.Duration
}

var _ Chain = (*EthereumChain)(nil)

// NewEthereumChain creates new chain sending transactions signed with opts through backend.
func NewEthereumChain(log *zap.Logger, backend blockchain.Backend, artifacts *contracts.Artifacts, opts *bind.TransactOpts, config Config) *EthereumChain {
	return &EthereumChain{
		log:          log,
		backend:      backend,
		artifacts:    artifacts,
		opts:         opts,
		waitTimeout:  config.WaitTimeout,
		pollInterval: config.PollInterval,
	}
}

// DeployVestingVault implements Chain.
func (chain *EthereumChain) DeployVestingVault(ctx context.Context, token blockchain.Address) (_ Deployment, err error) {
	defer mon.Task()(&ctx)(&err)

	address, tx, _, err := contracts.DeployVestingVault(chain.transactOpts(ctx), chain.backend, chain.artifacts.VestingVault, token)
	if err != nil {
		return Deployment{}, ErrRemote.Wrap(err)
	}
	return chain.waitDeployed(ctx, address, tx)
}

// DeployCrowdsale implements Chain.
func (chain *EthereumChain) DeployCrowdsale(ctx context.Context, token, treasury blockchain.Address, supplyCap *big.Int) (_ Deployment, err error) {
	defer mon.Task()(&ctx)(&err)

	address, tx, _, err := contracts.DeployCrowdsale(chain.transactOpts(ctx), chain.backend, chain.artifacts.Crowdsale, token, treasury, supplyCap)
	if err != nil {
		return Deployment{}, ErrRemote.Wrap(err)
	}
	return chain.waitDeployed(ctx, address, tx)
}

// SetVesting implements Chain.
func (chain *EthereumChain) SetVesting(ctx context.Context, sale, vault blockchain.Address) (_ Receipt, err error) {
	defer mon.Task()(&ctx)(&err)

	tx, err := contracts.NewCrowdsale(sale, chain.artifacts.Crowdsale, chain.backend).SetVesting(chain.transactOpts(ctx), vault)
	if err != nil {
		return Receipt{}, ErrRemote.Wrap(err)
	}
	return chain.waitMined(ctx, tx)
}

// SetPrice implements Chain.
func (chain *EthereumChain) SetPrice(ctx context.Context, sale blockchain.Address, quote PriceQuote) (_ Receipt, err error) {
	defer mon.Task()(&ctx)(&err)

	tx, err := contracts.NewCrowdsale(sale, chain.artifacts.Crowdsale, chain.backend).SetPrice(chain.transactOpts(ctx), quote.Currency, quote.Numerator, quote.Denominator, quote.Enabled)
	if err != nil {
		return Receipt{}, ErrRemote.Wrap(err)
	}
	return chain.waitMined(ctx, tx)
}

// transactOpts returns a copy of the signing options bound to ctx.
func (chain *EthereumChain) transactOpts(ctx context.Context) *bind.TransactOpts {
	opts := *chain.opts
	opts.Context = ctx
	return &opts
}

func (chain *EthereumChain) wait(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	chain.log.Debug("waiting for transaction", zap.Stringer("tx", tx.Hash()), zap.Uint64("nonce", tx.Nonce()))

	if chain.waitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, chain.waitTimeout)
		defer cancel()
	}

	rcpt, err := blockchain.WaitMined(ctx, chain.backend, tx.Hash(), chain.pollInterval)
	if err != nil {
		return nil, ErrRemote.Wrap(err)
	}
	return rcpt, nil
}

func (chain *EthereumChain) waitMined(ctx context.Context, tx *types.Transaction) (Receipt, error) {
	rcpt, err := chain.wait(ctx, tx)
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		TxHash:      rcpt.TxHash,
		BlockNumber: rcpt.BlockNumber.Uint64(),
	}, nil
}

func (chain *EthereumChain) waitDeployed(ctx context.Context, address blockchain.Address, tx *types.Transaction) (Deployment, error) {
	rcpt, err := chain.wait(ctx, tx)
	if err != nil {
		return Deployment{}, err
	}
	if rcpt.ContractAddress != address {
		return Deployment{}, ErrRemote.New("contract deployed at %s, expected %s", rcpt.ContractAddress.Hex(), address.Hex())
	}

	code, err := chain.backend.CodeAt(ctx, address, rcpt.BlockNumber)
	if err != nil {
		return Deployment{}, ErrRemote.Wrap(err)
	}
	if len(code) == 0 {
		return Deployment{}, ErrRemote.New("no contract code at %s after deployment", address.Hex())
	}

	return Deployment{
		Address:     address,
		TxHash:      rcpt.TxHash,
		BlockNumber: rcpt.BlockNumber.Uint64(),
	}, nil
}
