// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package units converts human readable decimal amounts into the fixed-point
// integers contracts expect.
package units

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"
)

// Error is the units error class.
var Error = errs.Class("units")

// DefaultDecimals is the precision used for token amounts and price quotes.
const DefaultDecimals = 8

const (
	// MaxDecimals is the largest precision whose unit still fits into uint256.
	MaxDecimals = 77
	// MaxBits is the width of the contract integer type.
	MaxBits = 256
)

// Parse converts a decimal string into an integer scaled by 10^decimals.
// Negative values, values with more fractional digits than decimals and values that
// don't fit into uint256 are rejected.
func Parse(value string, decimals int32) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, Error.New("empty amount")
	}
	if decimals < 0 || decimals > MaxDecimals {
		return nil, Error.New("decimals %d out of range [0, %d]", decimals, MaxDecimals)
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return nil, Error.New("invalid amount %q: %v", value, err)
	}
	if amount.Sign() < 0 {
		return nil, Error.New("negative amount %q", value)
	}
	// rescaling 1e999999999 does not finish
	if exp := amount.Exponent(); exp > MaxDecimals || exp < -MaxDecimals {
		return nil, Error.New("amount %q out of range", value)
	}

	scaled := amount.Shift(decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return nil, Error.New("amount %q has more than %d fractional digits", value, decimals)
	}
	result := scaled.BigInt()
	if result.BitLen() > MaxBits {
		return nil, Error.New("amount %q exceeds uint%d", value, MaxBits)
	}
	return result, nil
}

// MustParse is like Parse but panics on error. Only for constants.
func MustParse(value string, decimals int32) *big.Int {
	v, err := Parse(value, decimals)
	if err != nil {
		panic(err)
	}
	return v
}

// Format converts a scaled integer back into its decimal string.
func Format(value *big.Int, decimals int32) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, -decimals).String()
}
