// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package blockchain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/zeebo/errs"
)

// Address is wallet or contract address on eth chain.
type Address = common.Address

// NativeCurrency is the sentinel address contracts use to refer to the chain's native coin
// instead of a token contract.
var NativeCurrency = Address{}

// ErrAddress is returned when an address string can't be used.
var ErrAddress = errs.Class("address")

// AddressFromHex creates new address from hex string.
func AddressFromHex(hex string) (Address, error) {
	hex = strings.TrimSpace(hex)
	if !common.IsHexAddress(hex) {
		return Address{}, ErrAddress.New("invalid address hex string %q", hex)
	}
	return common.HexToAddress(hex), nil
}

// Hash represent cryptographic hash.
type Hash = common.Hash
