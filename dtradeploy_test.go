// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package dtradeploy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap/zaptest"

	"storj.io/common/testcontext"
	"storj.io/dtradeploy"
	"storj.io/dtradeploy/deploy"
	"storj.io/dtradeploy/network"
	"storj.io/dtradeploy/private/testeth"
)

func testConfig(t *testing.T, ctx *testcontext.Context) dtradeploy.Config {
	artifacts := ctx.Dir("artifacts")
	require.NoError(t, testeth.WriteArtifacts(artifacts, testeth.AcceptAllCode, testeth.AcceptAllCode))

	config := dtradeploy.Config{
		Deploy:            deploy.DefaultConfig(),
		MissingCredential: network.PolicySimulate,
	}
	config.Deploy.Token = "0x65B38B8fc2a8d8fc2798a002DfD8e257aB6b0382"
	config.Deploy.Treasury = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	config.Deploy.PollInterval = 10 * time.Millisecond
	config.Contracts.ArtifactsDir = artifacts
	config.Simulation.BlockInterval = 10 * time.Millisecond
	return config
}

func absentProfile(t *testing.T) network.Profile {
	profile, err := network.Resolve(network.MapLookup(nil))
	require.NoError(t, err)
	require.Equal(t, network.CredentialAbsent, profile.Credential)
	return profile
}

func TestAppInvalidParams(t *testing.T) {
	ctx := testcontext.New(t)

	config := testConfig(t, ctx)
	config.Deploy.Token = ""
	// unreadable artifacts must not matter, parameters are checked first
	config.Contracts.ArtifactsDir = ctx.File("missing")

	_, err := dtradeploy.NewApp(ctx, zaptest.NewLogger(t), config, absentProfile(t))
	require.Error(t, err)
	require.True(t, deploy.ErrConfig.Has(err))
	require.Contains(t, err.Error(), deploy.EnvToken)
}

func TestAppMissingCredential(t *testing.T) {
	ctx := testcontext.New(t)

	config := testConfig(t, ctx)
	config.MissingCredential = network.PolicyFail

	_, err := dtradeploy.NewApp(ctx, zaptest.NewLogger(t), config, absentProfile(t))
	require.Error(t, err)
	require.True(t, network.ErrNoCredential.Has(err))
}

func TestAppMissingArtifacts(t *testing.T) {
	ctx := testcontext.New(t)

	config := testConfig(t, ctx)
	config.Contracts.ArtifactsDir = ctx.File("missing")

	_, err := dtradeploy.NewApp(ctx, zaptest.NewLogger(t), config, absentProfile(t))
	require.Error(t, err)
	require.True(t, deploy.ErrConfig.Has(err))
}

func TestAppSimulated(t *testing.T) {
	ctx := testcontext.New(t)

	profile, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvOperatorKey: "not-a-key",
	}))
	require.NoError(t, err)
	require.Equal(t, network.CredentialMalformed, profile.Credential)

	app, err := dtradeploy.NewApp(ctx, zaptest.NewLogger(t), testConfig(t, ctx), profile)
	require.NoError(t, err)
	defer ctx.Check(app.Close)

	require.True(t, app.Simulated())
	require.True(t, app.Profile.HasCredential())
	require.Equal(t, network.SourceEphemeral, app.Profile.Source)

	report, err := app.Run(ctx)
	require.NoError(t, err)
	require.True(t, report.Simulated)
	require.Equal(t, deploy.StepReport, report.Completed)
	require.Len(t, report.Lines(), 3)
	require.NotEqual(t, report.VestingVault.Address, report.Crowdsale.Address)
}

func TestAppTracing(t *testing.T) {
	ctx := testcontext.New(t)

	previous := otel.GetTracerProvider()
	defer otel.SetTracerProvider(previous)

	config := testConfig(t, ctx)
	config.Tracing.Endpoint = "127.0.0.1:4317"
	config.Tracing.ServiceName = "dtradeploy-test"

	app, err := dtradeploy.NewApp(ctx, zaptest.NewLogger(t), config, absentProfile(t))
	require.NoError(t, err)
	require.NotNil(t, app.Tracing.Provider)
	require.Equal(t, app.Tracing.Provider, otel.GetTracerProvider())

	// closing without running stops the block producer and the exporter
	require.NoError(t, app.Close())
}

func TestAppWithoutTracing(t *testing.T) {
	ctx := testcontext.New(t)

	app, err := dtradeploy.NewApp(ctx, zaptest.NewLogger(t), testConfig(t, ctx), absentProfile(t))
	require.NoError(t, err)
	require.Nil(t, app.Tracing.Provider)
	require.NoError(t, app.Close())
}
