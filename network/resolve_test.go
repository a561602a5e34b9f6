// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package network_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/dtradeploy/network"
)

const (
	// well known development account #0 of the "test test ... junk" mnemonic.
	devMnemonic = "test test test test test test test test test test test junk"
	devKey      = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress  = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	devAddress1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func TestResolveDefaults(t *testing.T) {
	profile, err := network.Resolve(network.MapLookup(nil))
	require.NoError(t, err)

	require.Equal(t, network.DefaultName, profile.Name)
	require.Equal(t, network.DefaultRPCURL, profile.Endpoint)
	require.EqualValues(t, network.DefaultChainID, profile.ChainID)
	require.Equal(t, network.CredentialAbsent, profile.Credential)
	require.Equal(t, network.SourceNone, profile.Source)
	require.False(t, profile.HasCredential())

	_, err = profile.Transactor(big.NewInt(296))
	require.True(t, network.ErrNoCredential.Has(err))
}

func TestResolveEmptyValuesUseDefaults(t *testing.T) {
	profile, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvRPCURL:      "",
		network.EnvOperatorKey: "",
		network.EnvChainID:     "",
	}))
	require.NoError(t, err)
	require.Equal(t, network.DefaultRPCURL, profile.Endpoint)
	require.Equal(t, network.CredentialAbsent, profile.Credential)
}

func TestResolveOperatorKey(t *testing.T) {
	profile, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvRPCURL:      "http://127.0.0.1:8545",
		network.EnvOperatorKey: devKey,
		network.EnvChainID:     "31337",
	}))
	require.NoError(t, err)

	require.Equal(t, "http://127.0.0.1:8545", profile.Endpoint)
	require.EqualValues(t, 31337, profile.ChainID)
	require.Equal(t, network.CredentialPresent, profile.Credential)
	require.Equal(t, network.SourceOperatorKey, profile.Source)

	addr, err := profile.Address()
	require.NoError(t, err)
	require.Equal(t, devAddress, addr.Hex())

	opts, err := profile.Transactor(big.NewInt(31337))
	require.NoError(t, err)
	require.Equal(t, devAddress, opts.From.Hex())
}

func TestResolveMalformedKey(t *testing.T) {
	for _, key := range []string{
		strings.TrimPrefix(devKey, "0x"),
		"0X" + strings.TrimPrefix(devKey, "0x"),
		"0xnothex",
		"0x1234",
		"302e020100300506032b657004220420" + strings.TrimPrefix(devKey, "0x"),
	} {
		profile, err := network.Resolve(network.MapLookup(map[string]string{
			network.EnvOperatorKey: key,
		}))
		require.NoError(t, err)
		require.Equal(t, network.CredentialMalformed, profile.Credential, key)
		require.False(t, profile.HasCredential())

		_, err = profile.Transactor(big.NewInt(296))
		require.True(t, network.ErrNoCredential.Has(err))
		require.NotContains(t, profile.String(), key)
	}
}

func TestResolveMalformedKeyDoesNotFallBack(t *testing.T) {
	profile, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvOperatorKey: "nope",
		network.EnvPrivateKey:  devKey,
		network.EnvMnemonic:    devMnemonic,
	}))
	require.NoError(t, err)
	require.Equal(t, network.CredentialMalformed, profile.Credential)
	require.Equal(t, network.SourceOperatorKey, profile.Source)
}

func TestResolveLegacyPrivateKey(t *testing.T) {
	profile, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvPrivateKey: devKey,
	}))
	require.NoError(t, err)
	require.Equal(t, network.CredentialPresent, profile.Credential)
	require.Equal(t, network.SourcePrivateKey, profile.Source)
}

func TestResolveMnemonic(t *testing.T) {
	profile, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvMnemonic: devMnemonic,
	}))
	require.NoError(t, err)
	require.Equal(t, network.CredentialPresent, profile.Credential)
	require.Equal(t, network.SourceMnemonic, profile.Source)

	addr, err := profile.Address()
	require.NoError(t, err)
	require.Equal(t, devAddress, addr.Hex())

	profile, err = network.Resolve(network.MapLookup(map[string]string{
		network.EnvMnemonic:      devMnemonic,
		network.EnvMnemonicIndex: "1",
	}))
	require.NoError(t, err)
	addr, err = profile.Address()
	require.NoError(t, err)
	require.Equal(t, devAddress1, addr.Hex())

	profile, err = network.Resolve(network.MapLookup(map[string]string{
		network.EnvMnemonic: "test test test",
	}))
	require.NoError(t, err)
	require.Equal(t, network.CredentialMalformed, profile.Credential)
}

func TestResolveInvalidNumbers(t *testing.T) {
	_, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvChainID: "hedera",
	}))
	require.True(t, network.Error.Has(err))

	_, err = network.Resolve(network.MapLookup(map[string]string{
		network.EnvMnemonic:      devMnemonic,
		network.EnvMnemonicIndex: "-1",
	}))
	require.True(t, network.Error.Has(err))
}

func TestProfileString(t *testing.T) {
	profile, err := network.Resolve(network.MapLookup(map[string]string{
		network.EnvOperatorKey: devKey,
	}))
	require.NoError(t, err)

	s := profile.String()
	require.NotContains(t, s, strings.TrimPrefix(devKey, "0x"))
	require.Contains(t, s, devAddress)
	require.Contains(t, s, "credential=present")
}

func TestParseCredentialPolicy(t *testing.T) {
	policy, err := network.ParseCredentialPolicy("")
	require.NoError(t, err)
	require.Equal(t, network.PolicyFail, policy)

	policy, err = network.ParseCredentialPolicy(" Simulate ")
	require.NoError(t, err)
	require.Equal(t, network.PolicySimulate, policy)

	_, err = network.ParseCredentialPolicy("prompt")
	require.Error(t, err)

	var flag network.CredentialPolicy
	require.NoError(t, flag.Set("fail"))
	require.Equal(t, "fail", flag.String())
	require.Error(t, flag.Set("readonly"))
}
