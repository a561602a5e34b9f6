// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package network

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/zeebo/errs"

	"storj.io/dtradeploy/blockchain"
)

var (
	// Error is the network configuration error class.
	Error = errs.Class("network")

	// ErrNoCredential is returned when a signing operation is requested from a profile without a usable credential.
	ErrNoCredential = errs.Class("no signing credential")
)

// CredentialStatus names the outcome of credential resolution.
type CredentialStatus string

const (
	// CredentialPresent means a valid signing key was resolved.
	CredentialPresent CredentialStatus = "present"
	// CredentialAbsent means no credential was configured.
	CredentialAbsent CredentialStatus = "absent"
	// CredentialMalformed means a credential was configured but rejected; no key material is kept.
	CredentialMalformed CredentialStatus = "malformed"
)

// CredentialSource names where a credential came from.
type CredentialSource string

const (
	// SourceNone is used when no credential variable was set.
	SourceNone CredentialSource = ""
	// SourceOperatorKey is the HEDERA_OPERATOR_KEY variable.
	SourceOperatorKey CredentialSource = EnvOperatorKey
	// SourcePrivateKey is the legacy PRIVATE_KEY variable.
	SourcePrivateKey CredentialSource = EnvPrivateKey
	// SourceMnemonic is the HEDERA_OPERATOR_MNEMONIC variable.
	SourceMnemonic CredentialSource = EnvMnemonic
	// SourceEphemeral is a throwaway key generated for simulated deployments.
	SourceEphemeral CredentialSource = "ephemeral"
)

// Profile is the resolved description of the target network. It is immutable once resolved.
type Profile struct {
	Name     string
	Endpoint string
	// ChainID is the expected chain id, zero disables the check.
	ChainID uint64

	Credential CredentialStatus
	Source     CredentialSource

	key *ecdsa.PrivateKey
}

// HasCredential returns whether transactions can be signed with this profile.
func (profile Profile) HasCredential() bool {
	return profile.Credential == CredentialPresent && profile.key != nil
}

// Address returns the address of the signing account.
func (profile Profile) Address() (blockchain.Address, error) {
	if !profile.HasCredential() {
		return blockchain.Address{}, ErrNoCredential.New("credential is %s", profile.Credential)
	}
	return crypto.PubkeyToAddress(profile.key.PublicKey), nil
}

// Transactor creates transaction options signing with the profile key for the given chain.
func (profile Profile) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	if !profile.HasCredential() {
		return nil, ErrNoCredential.New("credential is %s", profile.Credential)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(profile.key, chainID)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return opts, nil
}

// WithEndpoint returns a copy of the profile pointing at a different endpoint.
func (profile Profile) WithEndpoint(endpoint string, chainID uint64) Profile {
	profile.Endpoint = endpoint
	profile.ChainID = chainID
	return profile
}

// WithKey returns a copy of the profile signing with key.
func (profile Profile) WithKey(key *ecdsa.PrivateKey, source CredentialSource) Profile {
	profile.key = key
	profile.Source = source
	profile.Credential = CredentialAbsent
	if key != nil {
		profile.Credential = CredentialPresent
	}
	return profile
}

// String implements fmt.Stringer without exposing key material.
func (profile Profile) String() string {
	account := "-"
	if addr, err := profile.Address(); err == nil {
		account = addr.Hex()
	}
	return fmt.Sprintf("%s endpoint=%s chain=%d credential=%s source=%s account=%s",
		profile.Name, profile.Endpoint, profile.ChainID, profile.Credential, sourceName(profile.Source), account)
}

func sourceName(source CredentialSource) string {
	if source == SourceNone {
		return "-"
	}
	return string(source)
}
