// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"storj.io/dtradeploy"
	"storj.io/dtradeploy/deploy"
	"storj.io/dtradeploy/network"
	"storj.io/dtradeploy/units"
)

// quoteJSON is the price quote in human readable units.
type quoteJSON struct {
	Currency    string `json:"currency"`
	Numerator   string `json:"numerator"`
	Denominator string `json:"denominator"`
	Enabled     bool   `json:"enabled"`
}

type reportJSON struct {
	deploy.Report
	Quote *quoteJSON `json:"quote,omitempty"`
}

func (cmd *command) newDeployCmd() *cobra.Command {
	config := dtradeploy.Config{
		Deploy:            deploy.DefaultConfig(),
		Tracing:           dtradeploy.TracingConfig{ServiceName: "dtradeploy"},
		MissingCredential: network.PolicyFail,
	}
	config.Contracts.ArtifactsDir = "artifacts/contracts"

	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy and wire the vesting vault and the crowdsale",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return cmd.deploy(c, config)
		},
	}

	flags := deployCmd.Flags()
	flags.StringVar(&config.Deploy.Cap, "cap", config.Deploy.Cap, "maximum amount of tokens sold, in whole tokens")
	flags.StringVar(&config.Deploy.PriceNumerator, "price-numerator", config.Deploy.PriceNumerator, "tokens per denominator of native currency")
	flags.StringVar(&config.Deploy.PriceDenominator, "price-denominator", config.Deploy.PriceDenominator, "native currency amount the numerator is quoted against")
	flags.BoolVar(&config.Deploy.PriceEnabled, "price-enabled", config.Deploy.PriceEnabled, "whether native currency purchases are enabled")
	flags.Int32Var(&config.Deploy.Decimals, "decimals", config.Deploy.Decimals, "fixed-point precision of cap and price values")
	flags.DurationVar(&config.Deploy.WaitTimeout, "wait-timeout", config.Deploy.WaitTimeout, "how long to wait for a single transaction")
	flags.DurationVar(&config.Deploy.PollInterval, "poll-interval", config.Deploy.PollInterval, "how often to poll for receipts")
	flags.StringVar(&config.Contracts.ArtifactsDir, "artifacts", config.Contracts.ArtifactsDir, "directory with compiled contract artifacts")
	flags.Var(&config.MissingCredential, "missing-credential", "what to do without a usable signing credential: fail or simulate")
	flags.DurationVar(&config.Simulation.BlockInterval, "simulation.block-interval", 0, "block interval of the simulated chain")

	return deployCmd
}

func (cmd *command) deploy(c *cobra.Command, config dtradeploy.Config) (err error) {
	ctx := c.Context()

	lookup, err := cmd.lookup()
	if err != nil {
		return err
	}

	log, err := cmd.logger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	config.Deploy.Token, _ = lookup(deploy.EnvToken)
	config.Deploy.Treasury, _ = lookup(deploy.EnvTreasury)
	config.Tracing.Endpoint, _ = lookup(dtradeploy.EnvExporterEndpoint)
	if name, ok := lookup(dtradeploy.EnvServiceName); ok && name != "" {
		config.Tracing.ServiceName = name
	}

	profile, err := network.Resolve(lookup)
	if err != nil {
		return err
	}

	app, err := dtradeploy.NewApp(ctx, log.Named("dtradeploy"), config, profile)
	if err != nil {
		return err
	}

	report, runErr := app.Run(ctx)
	closeErr := app.Close()

	if printErr := cmd.printReport(report); printErr != nil {
		return errs.Combine(runErr, closeErr, printErr)
	}
	return errs.Combine(runErr, closeErr)
}

func (cmd *command) printReport(report deploy.Report) error {
	if cmd.jsonOut {
		out := reportJSON{Report: report}
		if report.Completed >= deploy.StepSetPrice {
			out.Quote = &quoteJSON{
				Currency:    report.Quote.Currency.Hex(),
				Numerator:   units.Format(report.Quote.Numerator, report.Decimals),
				Denominator: units.Format(report.Quote.Denominator, report.Decimals),
				Enabled:     report.Quote.Enabled,
			}
		}
		return cmd.printJSON(out)
	}

	for _, line := range report.Lines() {
		if _, err := fmt.Fprintln(cmd.stdout, line); err != nil {
			return errs.Wrap(err)
		}
	}
	return nil
}
