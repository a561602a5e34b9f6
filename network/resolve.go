// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package network

import (
	"crypto/ecdsa"
	"os"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// Environment variables read by Resolve.
const (
	EnvRPCURL        = "HEDERA_RPC_URL"
	EnvOperatorKey   = "HEDERA_OPERATOR_KEY"
	EnvPrivateKey    = "PRIVATE_KEY"
	EnvMnemonic      = "HEDERA_OPERATOR_MNEMONIC"
	EnvMnemonicIndex = "HEDERA_OPERATOR_INDEX"
	EnvChainID       = "HEDERA_CHAIN_ID"
)

const (
	// DefaultName is the name of the only supported network.
	DefaultName = "hederaTestnet"
	// DefaultRPCURL is the public Hedera testnet JSON-RPC relay.
	DefaultRPCURL = "https://testnet.hashio.io/api"
	// DefaultChainID is the Hedera testnet chain id.
	DefaultChainID = 296

	keyPrefix = "0x"
)

// Lookup returns the value of an environment variable and whether it is set.
type Lookup func(key string) (string, bool)

// OSLookup reads the process environment.
func OSLookup(key string) (string, bool) { return os.LookupEnv(key) }

// MapLookup reads values from a map.
func MapLookup(env map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// Resolve builds the network profile from environment state. Credential problems never fail
// resolution, they are reported through Profile.Credential.
func Resolve(lookup Lookup) (Profile, error) {
	profile := Profile{
		Name:       DefaultName,
		Endpoint:   DefaultRPCURL,
		ChainID:    DefaultChainID,
		Credential: CredentialAbsent,
	}

	if v := get(lookup, EnvRPCURL); v != "" {
		profile.Endpoint = v
	}

	if v := get(lookup, EnvChainID); v != "" {
		chainID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Profile{}, Error.New("invalid %s %q: %v", EnvChainID, v, err)
		}
		profile.ChainID = chainID
	}

	switch {
	case get(lookup, EnvOperatorKey) != "":
		profile.Source = SourceOperatorKey
		profile.key = parseKey(get(lookup, EnvOperatorKey))
	case get(lookup, EnvPrivateKey) != "":
		profile.Source = SourcePrivateKey
		profile.key = parseKey(get(lookup, EnvPrivateKey))
	case get(lookup, EnvMnemonic) != "":
		profile.Source = SourceMnemonic

		var index uint64
		if v := get(lookup, EnvMnemonicIndex); v != "" {
			var err error
			index, err = strconv.ParseUint(v, 10, 31)
			if err != nil {
				return Profile{}, Error.New("invalid %s %q: %v", EnvMnemonicIndex, v, err)
			}
		}
		key, err := DeriveKey(get(lookup, EnvMnemonic), uint32(index))
		if err == nil {
			profile.key = key
		}
	default:
		return profile, nil
	}

	if profile.key == nil {
		profile.Credential = CredentialMalformed
	} else {
		profile.Credential = CredentialPresent
	}
	return profile, nil
}

func get(lookup Lookup, key string) string {
	v, ok := lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// parseKey accepts only 0x prefixed hex secp256k1 keys, anything else yields nil.
func parseKey(value string) *ecdsa.PrivateKey {
	if !strings.HasPrefix(value, keyPrefix) {
		return nil
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(value, keyPrefix))
	if err != nil {
		return nil
	}
	return key
}
