// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package network

import (
	"crypto/ecdsa"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcutil/hdkeychain"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/tyler-smith/go-bip39"
	"github.com/zeebo/errs"
)

// DerivationPath returns the standard Ethereum HD path for the account index.
func DerivationPath(index uint32) accounts.DerivationPath {
	path := make(accounts.DerivationPath, len(accounts.DefaultBaseDerivationPath))
	copy(path, accounts.DefaultBaseDerivationPath)
	path[len(path)-1] = index
	return path
}

// DeriveKey derives the secp256k1 key at m/44'/60'/0'/0/index from a BIP-39 mnemonic.
func DeriveKey(mnemonic string, index uint32) (*ecdsa.PrivateKey, error) {
	if mnemonic == "" {
		return nil, errs.New("mnemonic is required")
	}

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, errs.Wrap(err)
	}
	if len(seed) == 0 {
		return nil, errs.New("unexpectedly empty seed")
	}

	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	for _, n := range DerivationPath(index) {
		key, err = key.Derive(n)
		if err != nil {
			return nil, errs.Wrap(err)
		}
	}

	privateKey, err := key.ECPrivKey()
	if err != nil {
		return nil, errs.Wrap(err)
	}
	return privateKey.ToECDSA(), nil
}
