// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package testeth

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"storj.io/common/testcontext"
)

// Config holds testeth.Run configuration.
type Config struct {
	Accounts      int
	BlockInterval time.Duration
}

// Reconfigure allows to change config values.
type Reconfigure func(config *Config)

// WithAccounts sets the number of funded accounts.
func WithAccounts(n int) Reconfigure {
	return func(config *Config) {
		config.Accounts = n
	}
}

// Run creates simulated Ethereum test network producing blocks in the background and executes test function.
func Run(t *testing.T, reconfigure Reconfigure, test func(ctx *testcontext.Context, t *testing.T, network *Network)) {
	config := Config{
		Accounts:      2,
		BlockInterval: 10 * time.Millisecond,
	}
	if reconfigure != nil {
		reconfigure(&config)
	}

	t.Run("Simulated", func(t *testing.T) {
		ctx := testcontext.NewWithTimeout(t, 5*time.Minute)
		defer ctx.Cleanup()

		network, err := NewNetwork(zaptest.NewLogger(t).Named("testeth"), config.Accounts, config.BlockInterval)
		if err != nil {
			t.Fatal(err)
		}
		defer ctx.Check(network.Close)

		runCtx, stop := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() { done <- network.Run(runCtx) }()
		defer func() {
			stop()
			if err := <-done; err != nil {
				t.Error(err)
			}
		}()

		test(ctx, t, network)
	})
}
