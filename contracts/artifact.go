// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package contracts loads compiled contract artifacts and exposes typed
// bindings for the vesting vault and the crowdsale.
package contracts

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/zeebo/errs"
)

// Error is the contracts error class.
var Error = errs.Class("contracts")

// Contract names as produced by the solidity compiler.
const (
	VestingVaultName = "DTRAVestingVault"
	CrowdsaleName    = "DTRACrowdsale"
)

// Config holds contract artifact configuration.
type Config struct {
	ArtifactsDir string `help:"directory with compiled contract artifacts" default:"artifacts/contracts"`
}

// Artifact is a compiled contract: its interface and creation bytecode.
type Artifact struct {
	Name     string
	ABI      abi.ABI
	Bytecode []byte
}

// artifactJSON is the hardhat artifact file format.
type artifactJSON struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// ParseArtifact parses a compiled contract artifact JSON document.
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw artifactJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Error.New("invalid artifact: %v", err)
	}
	if len(raw.ABI) == 0 {
		return nil, Error.New("artifact %q has no abi", raw.ContractName)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, Error.New("artifact %q abi: %v", raw.ContractName, err)
	}

	return NewArtifact(raw.ContractName, parsed, raw.Bytecode)
}

// NewArtifact creates artifact from parsed abi and hex encoded bytecode.
func NewArtifact(name string, contractABI abi.ABI, bytecode string) (*Artifact, error) {
	bytecode = strings.TrimSpace(bytecode)
	if !strings.HasPrefix(bytecode, "0x") {
		bytecode = "0x" + bytecode
	}
	code, err := hexutil.Decode(bytecode)
	if err != nil {
		return nil, Error.New("artifact %q bytecode: %v", name, err)
	}
	if len(code) == 0 {
		return nil, Error.New("artifact %q has no bytecode; abstract contract or interface?", name)
	}

	return &Artifact{
		Name:     name,
		ABI:      contractABI,
		Bytecode: code,
	}, nil
}

// LoadArtifact reads artifact file from path.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, Error.New("%s: %v", path, err)
	}
	return artifact, nil
}

// ArtifactPath returns location of contract artifact inside hardhat artifacts directory.
func ArtifactPath(dir, name string) string {
	return filepath.Join(dir, name+".sol", name+".json")
}

// Artifacts holds every contract deployed by this tool.
type Artifacts struct {
	VestingVault *Artifact
	Crowdsale    *Artifact
}

// LoadArtifacts loads vault and crowdsale artifacts from the configured directory.
func LoadArtifacts(config Config) (*Artifacts, error) {
	vault, err := LoadArtifact(ArtifactPath(config.ArtifactsDir, VestingVaultName))
	if err != nil {
		return nil, err
	}
	sale, err := LoadArtifact(ArtifactPath(config.ArtifactsDir, CrowdsaleName))
	if err != nil {
		return nil, err
	}

	for _, check := range []struct {
		artifact *Artifact
		methods  []string
	}{
		{vault, nil},
		{sale, []string{setVestingMethod, setPriceMethod}},
	} {
		for _, method := range check.methods {
			if _, ok := check.artifact.ABI.Methods[method]; !ok {
				return nil, Error.New("artifact %q has no method %q", check.artifact.Name, method)
			}
		}
	}

	return &Artifacts{
		VestingVault: vault,
		Crowdsale:    sale,
	}, nil
}
