// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package deploy

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"storj.io/dtradeploy/units"
)

// Report is the outcome of a deployment. On failure it describes what was
// left on chain by the completed steps.
type Report struct {
	Network   string `json:"network"`
	Simulated bool   `json:"simulated"`

	// Completed is the last step that finished successfully.
	Completed Step `json:"completed"`

	VestingVault Deployment `json:"vestingVault"`
	Crowdsale    Deployment `json:"crowdsale"`
	Vesting      Receipt    `json:"vesting"`
	Price        Receipt    `json:"price"`

	Quote    PriceQuote `json:"-"`
	Decimals int32      `json:"-"`
}

// Lines returns human readable report lines.
func (report Report) Lines() []string {
	var lines []string
	if report.Completed >= StepDeployVault {
		lines = append(lines, "VestingVault: "+report.VestingVault.Address.Hex())
	}
	if report.Completed >= StepDeployCrowdsale {
		lines = append(lines, "Crowdsale: "+report.Crowdsale.Address.Hex())
	}
	if report.Completed >= StepSetPrice {
		lines = append(lines, "HBAR price set")
	}
	return lines
}

// Orchestrator deploys and wires the vesting vault and the crowdsale.
//
// architecture: Service
type Orchestrator struct {
	log   *zap.Logger
	chain Chain
}

// NewOrchestrator creates new orchestrator driving chain.
func NewOrchestrator(log *zap.Logger, chain Chain) *Orchestrator {
	return &Orchestrator{
		log:   log,
		chain: chain,
	}
}

// Run validates config and runs the deployment. No remote call is made when config is invalid.
func (orchestrator *Orchestrator) Run(ctx context.Context, config Config) (Report, error) {
	params, err := config.Params()
	if err != nil {
		return Report{}, err
	}
	report, err := orchestrator.Deploy(ctx, params)
	report.Decimals = config.Decimals
	return report, err
}

// Deploy executes the steps strictly one after another. The first failure aborts the
// remaining steps; completed steps are not rolled back.
func (orchestrator *Orchestrator) Deploy(ctx context.Context, params Params) (report Report, err error) {
	defer mon.Task()(&ctx)(&err)

	report.Quote = params.Price
	report.Decimals = units.DefaultDecimals

	defer func() {
		if err != nil {
			orchestrator.log.Error("deployment aborted",
				zap.Int("completed", int(report.Completed)),
				zap.Stringer("vault", report.VestingVault.Address),
				zap.Stringer("crowdsale", report.Crowdsale.Address),
				zap.Error(err))
		}
	}()

	err = orchestrator.step(ctx, StepDeployVault, &report, func(ctx context.Context) (err error) {
		report.VestingVault, err = orchestrator.chain.DeployVestingVault(ctx, params.Token)
		if err != nil {
			return err
		}
		orchestrator.log.Info("VestingVault deployed",
			zap.Stringer("address", report.VestingVault.Address),
			zap.Stringer("tx", report.VestingVault.TxHash))
		return nil
	})
	if err != nil {
		return report, err
	}

	err = orchestrator.step(ctx, StepDeployCrowdsale, &report, func(ctx context.Context) (err error) {
		report.Crowdsale, err = orchestrator.chain.DeployCrowdsale(ctx, params.Token, params.Treasury, params.Cap)
		if err != nil {
			return err
		}
		orchestrator.log.Info("Crowdsale deployed",
			zap.Stringer("address", report.Crowdsale.Address),
			zap.Stringer("tx", report.Crowdsale.TxHash))
		return nil
	})
	if err != nil {
		return report, err
	}

	err = orchestrator.step(ctx, StepWireVesting, &report, func(ctx context.Context) (err error) {
		report.Vesting, err = orchestrator.chain.SetVesting(ctx, report.Crowdsale.Address, report.VestingVault.Address)
		return err
	})
	if err != nil {
		return report, err
	}

	err = orchestrator.step(ctx, StepSetPrice, &report, func(ctx context.Context) (err error) {
		report.Price, err = orchestrator.chain.SetPrice(ctx, report.Crowdsale.Address, params.Price)
		if err != nil {
			return err
		}
		orchestrator.log.Info("HBAR price set",
			zap.String("numerator", params.Price.Numerator.String()),
			zap.String("denominator", params.Price.Denominator.String()),
			zap.Bool("enabled", params.Price.Enabled))
		return nil
	})
	if err != nil {
		return report, err
	}

	report.Completed = StepReport
	orchestrator.log.Info("deployment complete",
		zap.Stringer("vault", report.VestingVault.Address),
		zap.Stringer("crowdsale", report.Crowdsale.Address))
	return report, nil
}

// step runs fn inside a span, marks the step completed on success and wraps failures.
func (orchestrator *Orchestrator) step(ctx context.Context, step Step, report *Report, fn func(ctx context.Context) error) (err error) {
	ctx, span := otel.Tracer(os.Getenv("SERVICE_NAME")).Start(ctx, step.String())
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	orchestrator.log.Debug("running step", zap.Int("step", int(step)), zap.Stringer("name", step))

	if err := ctx.Err(); err != nil {
		return &StepError{Step: step, Err: ErrRemote.Wrap(err)}
	}

	if err := fn(ctx); err != nil {
		if !ErrRemote.Has(err) {
			err = ErrRemote.Wrap(err)
		}
		return &StepError{Step: step, Err: err}
	}

	report.Completed = step
	return nil
}
