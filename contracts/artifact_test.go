// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package contracts_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/dtradeploy/contracts"
)

func writeArtifact(t *testing.T, dir, name, abiJSON, bytecode string) {
	t.Helper()

	data, err := json.Marshal(map[string]interface{}{
		"contractName": name,
		"abi":          json.RawMessage(abiJSON),
		"bytecode":     bytecode,
	})
	require.NoError(t, err)

	path := contracts.ArtifactPath(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, contracts.VestingVaultName, contracts.VestingVaultABI, "0x60016000f3")
	writeArtifact(t, dir, contracts.CrowdsaleName, contracts.CrowdsaleABI, "60016000f3")

	artifacts, err := contracts.LoadArtifacts(contracts.Config{ArtifactsDir: dir})
	require.NoError(t, err)

	require.Equal(t, contracts.VestingVaultName, artifacts.VestingVault.Name)
	require.Equal(t, []byte{0x60, 0x01, 0x60, 0x00, 0xf3}, artifacts.VestingVault.Bytecode)
	require.Len(t, artifacts.VestingVault.ABI.Constructor.Inputs, 1)

	require.Equal(t, contracts.CrowdsaleName, artifacts.Crowdsale.Name)
	require.Equal(t, artifacts.VestingVault.Bytecode, artifacts.Crowdsale.Bytecode)
	require.Len(t, artifacts.Crowdsale.ABI.Constructor.Inputs, 3)
	require.Contains(t, artifacts.Crowdsale.ABI.Methods, "setVesting")
	require.Contains(t, artifacts.Crowdsale.ABI.Methods, "setPrice")
}

func TestLoadArtifactsMissing(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, contracts.VestingVaultName, contracts.VestingVaultABI, "0x60016000f3")

	_, err := contracts.LoadArtifacts(contracts.Config{ArtifactsDir: dir})
	require.Error(t, err)
	require.True(t, contracts.Error.Has(err))
}

func TestLoadArtifactsMissingMethod(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, contracts.VestingVaultName, contracts.VestingVaultABI, "0x60016000f3")
	writeArtifact(t, dir, contracts.CrowdsaleName, contracts.VestingVaultABI, "0x60016000f3")

	_, err := contracts.LoadArtifacts(contracts.Config{ArtifactsDir: dir})
	require.Error(t, err)
	require.Contains(t, err.Error(), "setVesting")
}

func TestParseArtifactInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"not json":       `{`,
		"no abi":         `{"contractName":"X","bytecode":"0x6001"}`,
		"bad abi":        `{"contractName":"X","abi":{"type":1},"bytecode":"0x6001"}`,
		"empty bytecode": `{"contractName":"X","abi":[],"bytecode":"0x"}`,
		"bad bytecode":   `{"contractName":"X","abi":[],"bytecode":"0xzz"}`,
	} {
		_, err := contracts.ParseArtifact([]byte(data))
		require.Error(t, err, name)
		require.True(t, contracts.Error.Has(err), name)
	}
}

func TestParseABI(t *testing.T) {
	parsed, err := contracts.ParseABI(contracts.CrowdsaleABI)
	require.NoError(t, err)

	method := parsed.Methods["setPrice"]
	require.Len(t, method.Inputs, 4)
	require.Equal(t, "bool", method.Inputs[3].Type.String())

	_, err = contracts.ParseABI(`[`)
	require.Error(t, err)
}
