// Package app implements the application layer for ktrun.
package app

import (
	"context"
	"io"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports"
	"github.com/lotoze/ktrun/internal/engine/launch"
	"go.trai.ch/zerr"
)

// App orchestrates a test run: load the manifest, resolve each selected
// target into an execution spec, launch it, and report the outcome.
type App struct {
	loader    ports.ConfigLoader
	runner    ports.Runner
	reporter  ports.Reporter
	clients   ports.ClientFactory
	logger    ports.Logger
	telemetry ports.Telemetry
	tracer    ports.Tracer

	configPath  string
	parallelism int
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner ports.Runner,
	reporter ports.Reporter,
	clients ports.ClientFactory,
	logger ports.Logger,
	telemetry ports.Telemetry,
	tracer ports.Tracer,
) *App {
	return &App{
		loader:      loader,
		runner:      runner,
		reporter:    reporter,
		clients:     clients,
		logger:      logger,
		telemetry:   telemetry,
		tracer:      tracer,
		configPath:  "ktrun.yaml",
		parallelism: runtime.NumCPU(),
	}
}

// SetConfigPath overrides the manifest path.
func (a *App) SetConfigPath(path string) {
	if path != "" {
		a.configPath = path
	}
}

// SetParallelism bounds how many targets run concurrently.
func (a *App) SetParallelism(n int) {
	if n > 0 {
		a.parallelism = n
	}
}

// Run executes the named test targets. An empty name list runs every target
// in the manifest. It returns ErrTestsFailed when the run summary contains
// failed tests.
func (a *App) Run(ctx context.Context, targetNames []string) error {
	ctx, span := a.tracer.Start(ctx, "test-run")
	defer span.End()
	defer func() { _ = a.telemetry.Close() }()

	manifest, err := a.loader.Load(a.configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	targets, err := manifest.Select(targetNames)
	if err != nil {
		return err
	}
	span.SetAttribute("targets", len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.parallelism)
	for _, target := range targets {
		g.Go(func() error {
			return a.runTarget(gctx, target)
		})
	}
	runErr := g.Wait()

	summary := a.reporter.Summary()
	a.logger.Info(summary.String())

	if runErr != nil {
		span.RecordError(runErr)
		return runErr
	}
	if summary.Failed > 0 {
		return zerr.With(domain.ErrTestsFailed, "failed", summary.Failed)
	}
	return nil
}

// runTarget resolves, probes and launches a single target. A skipped run,
// missing test binary, is not an error.
func (a *App) runTarget(ctx context.Context, target domain.TestTarget) error {
	spec, err := launch.BuildSpec(target)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to build execution spec"), "target", target.Name)
	}

	ctx, span := a.tracer.Start(ctx, "target "+target.Name)
	defer span.End()
	span.SetAttribute("fingerprint", domain.InputFingerprint(spec))

	ctx, vertex := a.telemetry.Record(ctx, "test "+target.Name)

	// Simulator specs carry a shortened dry-run argument list used to probe
	// device availability before the real run.
	if dry := spec.DryRun(); dry != nil {
		if _, err := a.runner.Run(ctx, dry, io.Discard, io.Discard); err != nil {
			vertex.Complete(err)
			span.RecordError(err)
			return zerr.With(zerr.Wrap(err, "simulator availability probe failed"), "target", target.Name)
		}
	}

	client := a.clients.NewClient(a.reporter, spec.Client())
	result, runErr := a.runner.Run(ctx, spec, io.MultiWriter(client, vertex.Stdout()), vertex.Stderr())
	if err := client.Close(); err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to flush result stream"))
	}

	if runErr != nil {
		vertex.Complete(runErr)
		span.RecordError(runErr)
		return zerr.With(zerr.Wrap(runErr, "test execution failed"), "target", target.Name)
	}
	if result.Skipped {
		vertex.Skipped()
		return nil
	}
	vertex.Complete(nil)
	return nil
}
