// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package testeth

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zeebo/errs"

	"storj.io/dtradeploy/contracts"
)

// Stub creation bytecode. Constructor arguments appended by the deployer are never executed.
const (
	// AcceptAllCode deploys runtime code 0x00 (STOP): every call succeeds.
	AcceptAllCode = "0x60016000f3"
	// RevertingCode deploys runtime code that reverts every call.
	RevertingCode = "0x6005600c60003960056000f360006000fd"
	// RevertingConstructorCode reverts during deployment.
	RevertingConstructorCode = "0x60006000fd"
)

// Artifacts returns vault and crowdsale artifacts with the real interfaces and stub bytecode.
func Artifacts(vaultCode, saleCode string) (*contracts.Artifacts, error) {
	vaultABI, err := contracts.ParseABI(contracts.VestingVaultABI)
	if err != nil {
		return nil, err
	}
	saleABI, err := contracts.ParseABI(contracts.CrowdsaleABI)
	if err != nil {
		return nil, err
	}

	vault, err := contracts.NewArtifact(contracts.VestingVaultName, vaultABI, vaultCode)
	if err != nil {
		return nil, err
	}
	sale, err := contracts.NewArtifact(contracts.CrowdsaleName, saleABI, saleCode)
	if err != nil {
		return nil, err
	}

	return &contracts.Artifacts{
		VestingVault: vault,
		Crowdsale:    sale,
	}, nil
}

// WriteArtifacts writes stub artifacts in the hardhat layout under dir.
func WriteArtifacts(dir, vaultCode, saleCode string) error {
	for _, artifact := range []struct {
		name, abi, code string
	}{
		{contracts.VestingVaultName, contracts.VestingVaultABI, vaultCode},
		{contracts.CrowdsaleName, contracts.CrowdsaleABI, saleCode},
	} {
		data, err := json.Marshal(map[string]interface{}{
			"contractName": artifact.name,
			"abi":          json.RawMessage(artifact.abi),
			"bytecode":     artifact.code,
		})
		if err != nil {
			return errs.Wrap(err)
		}

		path := contracts.ArtifactPath(dir, artifact.name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return errs.Wrap(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errs.Wrap(err)
		}
	}
	return nil
}
