// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package blockchain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"
)

var (
	mon = monkit.Package()

	// ErrClient is client error class.
	ErrClient = errs.Class("Client")

	// ErrReverted is returned when a mined transaction has a failed status.
	ErrReverted = errs.Class("transaction reverted")
)

// DefaultPollInterval is how often receipts are requested while waiting for a transaction.
const DefaultPollInterval = time.Second

// Backend is the set of chain operations needed to deploy and configure contracts.
// Both the RPC client and the simulated chain client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend

	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account Address, blockNumber *big.Int) (*big.Int, error)
}

// Client is ethereum rpc client used for deployments.
type Client struct {
	*ethclient.Client
}

var _ Backend = (*Client)(nil)

// Dial dials endpoint and initiates new client.
func Dial(ctx context.Context, endpoint string) (_ *Client, err error) {
	defer mon.Task()(&ctx)(&err)

	c, err := ethclient.DialContext(ctx, endpoint)
	if err != nil {
		return nil, ErrClient.Wrap(err)
	}
	return &Client{Client: c}, nil
}

// Close closes underlying rpc connection.
func (client *Client) Close() error {
	client.Client.Close()
	return nil
}

// WaitMined blocks until the transaction receipt is available or the context is cancelled.
// A receipt with failed status is returned together with ErrReverted.
func WaitMined(ctx context.Context, backend bind.DeployBackend, hash Hash, interval time.Duration) (_ *types.Receipt, err error) {
	defer mon.Task()(&ctx)(&err)

	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		rcpt, err := backend.TransactionReceipt(ctx, hash)
		if err == nil {
			if rcpt.Status == types.ReceiptStatusSuccessful {
				return rcpt, nil
			}
			return rcpt, ErrReverted.New("%s", hash.Hex())
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, ErrClient.Wrap(err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
