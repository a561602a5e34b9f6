// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storj.io/common/testcontext"
	"storj.io/dtradeploy/simulation"
)

func TestCloseWithoutRun(t *testing.T) {
	chain, err := simulation.New(zaptest.NewLogger(t), simulation.Config{})
	require.NoError(t, err)
	require.Len(t, chain.Accounts(), 1)
	require.NoError(t, chain.Close())
}

func TestRunProducesBlocks(t *testing.T) {
	ctx := testcontext.New(t)

	chain, err := simulation.New(zaptest.NewLogger(t), simulation.Config{
		BlockInterval: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- chain.Run(runCtx) }()

	require.Eventually(t, func() bool {
		header, err := chain.Client().HeaderByNumber(ctx, nil)
		return err == nil && header.Number.Uint64() >= 2
	}, 10*time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	require.NoError(t, chain.Close())
}
