// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

// Package deploy deploys the vesting vault and the crowdsale and wires them together.
package deploy

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"

	"storj.io/dtradeploy/blockchain"
	"storj.io/dtradeploy/units"
)

var (
	mon = monkit.Package()

	// ErrConfig is returned for invalid deployment parameters, always before any network call.
	ErrConfig = errs.Class("configuration")

	// ErrRemote wraps failures reported by the chain: rejected, reverted or timed out transactions.
	ErrRemote = errs.Class("remote call")
)

// Environment variables holding the required addresses.
const (
	EnvToken    = "DTRA_TOKEN"
	EnvTreasury = "TREASURY"
)

// Config holds deployment parameters as configured by the operator.
type Config struct {
	Token            string        `help:"address of the DTRA token contract (DTRA_TOKEN)" default:""`
	Treasury         string        `help:"address receiving sale proceeds (TREASURY)" default:""`
	Cap              string        `help:"maximum amount of tokens sold, in whole tokens" default:"10000000"`
	PriceNumerator   string        `help:"tokens given per price denominator of native currency" default:"5"`
	PriceDenominator string        `help:"native currency amount the numerator is quoted against" default:"1"`
	Decimals         int32         `help:"fixed-point precision of cap and price values" default:"8"`
	PriceEnabled     bool          `help:"whether native currency purchases are enabled" default:"true"`
	WaitTimeout      time.Duration `help:"how long to wait for a single transaction to be mined" default:"5m"`
	PollInterval     time.Duration `help:"how often to poll for transaction receipts" default:"1s"`
}

// DefaultConfig returns configuration with the default values.
func DefaultConfig() Config {
	return Config{
		Cap:              "10000000",
		PriceNumerator:   "5",
		PriceDenominator: "1",
		Decimals:         units.DefaultDecimals,
		PriceEnabled:     true,
		WaitTimeout:      5 * time.Minute,
		PollInterval:     blockchain.DefaultPollInterval,
	}
}

// PriceQuote is the price of the token in a payment currency.
type PriceQuote struct {
	Currency    blockchain.Address
	Numerator   *big.Int
	Denominator *big.Int
	Enabled     bool
}

// Params are validated deployment parameters.
type Params struct {
	Token    blockchain.Address
	Treasury blockchain.Address
	Cap      *big.Int
	Price    PriceQuote
}

// Params validates configuration and converts it into deployment parameters.
func (config Config) Params() (Params, error) {
	var missing []string
	if config.Token == "" {
		missing = append(missing, EnvToken)
	}
	if config.Treasury == "" {
		missing = append(missing, EnvTreasury)
	}
	if len(missing) > 0 {
		return Params{}, ErrConfig.New("set %s and %s, missing %v", EnvToken, EnvTreasury, missing)
	}

	token, err := parseAddress(EnvToken, config.Token)
	if err != nil {
		return Params{}, err
	}
	treasury, err := parseAddress(EnvTreasury, config.Treasury)
	if err != nil {
		return Params{}, err
	}

	supplyCap, err := units.Parse(config.Cap, config.Decimals)
	if err != nil {
		return Params{}, ErrConfig.New("cap: %v", err)
	}
	if supplyCap.Sign() == 0 {
		return Params{}, ErrConfig.New("cap must be positive")
	}

	numerator, err := units.Parse(config.PriceNumerator, config.Decimals)
	if err != nil {
		return Params{}, ErrConfig.New("price numerator: %v", err)
	}
	denominator, err := units.Parse(config.PriceDenominator, config.Decimals)
	if err != nil {
		return Params{}, ErrConfig.New("price denominator: %v", err)
	}
	if denominator.Sign() == 0 {
		return Params{}, ErrConfig.New("price denominator must be positive")
	}

	return Params{
		Token:    token,
		Treasury: treasury,
		Cap:      supplyCap,
		Price: PriceQuote{
			Currency:    blockchain.NativeCurrency,
			Numerator:   numerator,
			Denominator: denominator,
			Enabled:     config.PriceEnabled,
		},
	}, nil
}

func parseAddress(name, value string) (blockchain.Address, error) {
	addr, err := blockchain.AddressFromHex(value)
	if err != nil {
		return blockchain.Address{}, ErrConfig.New("%s: %v", name, err)
	}
	if addr == (blockchain.Address{}) {
		return blockchain.Address{}, ErrConfig.New("%s: zero address", name)
	}
	return addr, nil
}

// Deployment is a deployed contract handle.
type Deployment struct {
	Address     blockchain.Address `json:"address"`
	TxHash      blockchain.Hash    `json:"txHash"`
	BlockNumber uint64             `json:"blockNumber"`
}

// Receipt identifies a mined configuration transaction.
type Receipt struct {
	TxHash      blockchain.Hash `json:"txHash"`
	BlockNumber uint64          `json:"blockNumber"`
}

// Chain is the remote layer driven by the orchestrator. Every method returns
// only after the transaction is mined.
type Chain interface {
	// DeployVestingVault deploys the vault bound to token.
	DeployVestingVault(ctx context.Context, token blockchain.Address) (Deployment, error)
	// DeployCrowdsale deploys the sale bound to token, treasury and cap.
	DeployCrowdsale(ctx context.Context, token, treasury blockchain.Address, supplyCap *big.Int) (Deployment, error)
	// SetVesting registers vault inside sale.
	SetVesting(ctx context.Context, sale, vault blockchain.Address) (Receipt, error)
	// SetPrice sets the price quote on sale.
	SetPrice(ctx context.Context, sale blockchain.Address, quote PriceQuote) (Receipt, error)
}

// Step is one of the deployment steps, numbered in execution order.
type Step int

// Deployment steps.
const (
	StepDeployVault Step = 1 + iota
	StepDeployCrowdsale
	StepWireVesting
	StepSetPrice
	StepReport
)

// String implements fmt.Stringer.
func (step Step) String() string {
	switch step {
	case StepDeployVault:
		return "deploy vesting vault"
	case StepDeployCrowdsale:
		return "deploy crowdsale"
	case StepWireVesting:
		return "wire vesting"
	case StepSetPrice:
		return "set price"
	case StepReport:
		return "report"
	default:
		return fmt.Sprintf("step(%d)", int(step))
	}
}

// StepError is returned when a step fails; Step is the step that was aborted.
type StepError struct {
	Step Step
	Err  error
}

// Error implements error.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", int(e.Step), e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error { return e.Err }
