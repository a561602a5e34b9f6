// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package deploy

import (
	"context"
	"math/big"

	"go.uber.org/zap"

	"storj.io/dtradeploy/blockchain"
)

// Preflight checks the network before anything is sent: the endpoint answers, it is the
// expected chain (unless expectedChainID is zero) and the deployer can pay for gas.
// It returns the chain id used for signing.
func Preflight(ctx context.Context, log *zap.Logger, backend blockchain.Backend, deployer blockchain.Address, expectedChainID uint64) (_ *big.Int, err error) {
	defer mon.Task()(&ctx)(&err)

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, ErrRemote.New("get chain id: %v", err)
	}
	if expectedChainID != 0 && (!chainID.IsUint64() || chainID.Uint64() != expectedChainID) {
		return nil, ErrConfig.New("chain id mismatch: expected %d, got %s", expectedChainID, chainID)
	}

	balance, err := backend.BalanceAt(ctx, deployer, nil)
	if err != nil {
		return nil, ErrRemote.New("get balance: %v", err)
	}
	log.Info("deployer",
		zap.Stringer("address", deployer),
		zap.Stringer("chain", chainID),
		zap.String("balance", balance.String()))

	if balance.Sign() == 0 {
		return nil, ErrConfig.New("deployer %s has no balance", deployer.Hex())
	}
	return chainID, nil
}
