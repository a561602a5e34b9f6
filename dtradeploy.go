// Copyright (C) 2026 Storj Labs, Inc.
// See LICENSE for copying information.

package dtradeploy

import (
	"context"
	"time"

	"github.com/zeebo/errs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storj.io/dtradeploy/blockchain"
	"storj.io/dtradeploy/contracts"
	"storj.io/dtradeploy/deploy"
	"storj.io/dtradeploy/network"
	"storj.io/dtradeploy/simulation"
	"storj.io/storj/private/lifecycle"
)

// Environment variables configuring trace export.
const (
	EnvExporterEndpoint = "EXPORTER_ENDPOINT"
	EnvServiceName      = "SERVICE_NAME"
)

// TracingConfig configures span export, nothing is exported without an endpoint.
type TracingConfig struct {
	Endpoint    string `help:"OTLP gRPC collector address (EXPORTER_ENDPOINT)" default:""`
	ServiceName string `help:"service name reported with spans (SERVICE_NAME)" default:"dtradeploy"`
}

// Config wraps dtradeploy configuration.
type Config struct {
	Deploy            deploy.Config
	Contracts         contracts.Config
	Simulation        simulation.Config
	Tracing           TracingConfig
	MissingCredential network.CredentialPolicy `help:"what to do without a usable signing credential: fail or simulate" default:"fail"`
}

// App deploys the vesting vault and the crowdsale to the configured network.
//
// architecture: Peer
type App struct {
	Log      *zap.Logger
	Config   Config
	Profile  network.Profile
	Params   deploy.Params
	Services *lifecycle.Group

	Tracing struct {
		Provider *sdktrace.TracerProvider
	}

	Contracts struct {
		Artifacts *contracts.Artifacts
	}

	Chain struct {
		Backend    blockchain.Backend
		Client     *blockchain.Client
		Simulation *simulation.Chain
	}
}

// NewApp creates new application instance. Deployment parameters and the credential policy
// are checked before any connection is made.
func NewApp(ctx context.Context, log *zap.Logger, config Config, profile network.Profile) (*App, error) {
	app := &App{
		Log:      log,
		Config:   config,
		Profile:  profile,
		Services: lifecycle.NewGroup(log.Named("services")),
	}

	{ // parameters
		var err error
		app.Params, err = config.Deploy.Params()
		if err != nil {
			return nil, err
		}
	}

	simulate := false
	{ // credential
		if !profile.HasCredential() {
			switch config.MissingCredential {
			case network.PolicySimulate:
				log.Warn("no usable signing credential, deploying to simulated chain",
					zap.String("credential", string(profile.Credential)))
				simulate = true
			default:
				return nil, network.ErrNoCredential.New("credential is %s; set %s (0x prefixed hex key) or use --missing-credential=%s",
					profile.Credential, network.EnvOperatorKey, network.PolicySimulate)
			}
		}
		if profile.Credential == network.CredentialMalformed {
			log.Warn("ignoring malformed signing credential", zap.String("source", string(profile.Source)))
		}
	}

	{ // contracts
		var err error
		app.Contracts.Artifacts, err = contracts.LoadArtifacts(config.Contracts)
		if err != nil {
			return nil, deploy.ErrConfig.Wrap(err)
		}
	}

	{ // chain
		if simulate {
			chain, err := simulation.New(log.Named("simulation"), config.Simulation)
			if err != nil {
				return nil, err
			}
			app.Chain.Simulation = chain
			app.Chain.Backend = chain.Client()
			app.Services.Add(lifecycle.Item{
				Name:  "simulation:producer",
				Run:   chain.Run,
				Close: chain.Close,
			})
			app.Profile = profile.
				WithEndpoint(simulation.Endpoint, simulation.ChainID).
				WithKey(chain.Key(0), network.SourceEphemeral)
			app.Profile.Name = simulation.Endpoint
		} else {
			client, err := blockchain.Dial(ctx, profile.Endpoint)
			if err != nil {
				return nil, deploy.ErrRemote.Wrap(err)
			}
			app.Chain.Client = client
			app.Chain.Backend = client
		}
	}

	{ // setup tracing
		if config.Tracing.Endpoint != "" {
			var err error
			app.Tracing.Provider, err = initTracer(ctx, config.Tracing)
			if err != nil {
				return nil, errs.Combine(err, app.Close())
			}
		}
	}

	log.Info("network", zap.Stringer("profile", app.Profile))
	return app, nil
}

func initTracer(ctx context.Context, config TracingConfig) (*sdktrace.TracerProvider, error) {
	traceClient := otlptracegrpc.NewClient(
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(config.Endpoint))
	sctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	traceExp, err := otlptrace.New(sctx, traceClient)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
		),
	)
	if err != nil {
		return nil, errs.Combine(err, traceExp.Shutdown(ctx))
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(sdktrace.NewBatchSpanProcessor(traceExp)),
	)

	// set global propagator to tracecontext (the default is no-op).
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	otel.SetTracerProvider(tracerProvider)
	return tracerProvider, nil
}

// Simulated returns whether the deployment targets the simulated chain.
func (app *App) Simulated() bool { return app.Chain.Simulation != nil }

// Run runs the deployment while the services (the simulated chain's block producer)
// run next to it. A simulated chain produces blocks only while Run executes,
// so Run must be called once per simulated App.
func (app *App) Run(ctx context.Context) (report deploy.Report, err error) {
	group, groupCtx := errgroup.WithContext(ctx)
	servicesCtx, stopServices := context.WithCancel(groupCtx)
	defer stopServices()

	app.Services.Run(servicesCtx, group)
	group.Go(func() error {
		defer stopServices()
		var deployErr error
		report, deployErr = app.deploy(groupCtx)
		return deployErr
	})
	return report, group.Wait()
}

func (app *App) deploy(ctx context.Context) (report deploy.Report, err error) {
	deployer, err := app.Profile.Address()
	if err != nil {
		return report, err
	}

	chainID, err := deploy.Preflight(ctx, app.Log.Named("deploy:preflight"), app.Chain.Backend, deployer, app.Profile.ChainID)
	if err != nil {
		return report, err
	}

	opts, err := app.Profile.Transactor(chainID)
	if err != nil {
		return report, err
	}

	chain := deploy.NewEthereumChain(app.Log.Named("deploy:chain"), app.Chain.Backend, app.Contracts.Artifacts, opts, app.Config.Deploy)
	orchestrator := deploy.NewOrchestrator(app.Log.Named("deploy:orchestrator"), chain)

	report, err = orchestrator.Deploy(ctx, app.Params)
	report.Network = app.Profile.Name
	report.Simulated = app.Simulated()
	report.Decimals = app.Config.Deploy.Decimals
	return report, err
}

// Close closes all the resources.
func (app *App) Close() error {
	var errList errs.Group
	errList.Add(app.Services.Close())
	if app.Chain.Client != nil {
		errList.Add(app.Chain.Client.Close())
	}
	if app.Tracing.Provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		errList.Add(app.Tracing.Provider.Shutdown(ctx))
	}
	return errList.Err()
}
