package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	rig "github.com/bench-labs/rig-acceptor"
	"github.com/bench-labs/rig-acceptor/flags"
	"github.com/bench-labs/rig-acceptor/service"
)

var (
	Version   = "v0.3.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "rig-acceptor"
	app.Usage = "Hardware Rig Acceptance Tester Service"
	app.Description = "rig-acceptor runs acceptance test suites against a device under test"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if rig.IsRuntimeError(err) {
				// Configuration and runtime errors exit with code 2
				cli.HandleExitCoder(cli.Exit(err.Error(), 2))
			} else {
				// Test failures and unspecified errors exit with code 1
				cli.HandleExitCoder(cli.Exit(err.Error(), 1))
			}
		}
	}

	// Start telemetry
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Error("failed to set up open telemetry", "error", err)
		os.Exit(2)
	}
	defer otelShutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start healthz and metrics servers
	svc := service.New()
	svc.Start(ctx)
	defer svc.Shutdown()

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if level, err := log.ParseLevel(cliCtx.String(flags.LogLevel.Name)); err == nil {
		logger.SetLevel(level)
	}

	cfg, err := rig.NewConfig(cliCtx, logger)
	if err != nil {
		return rig.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	ctx, cancel := context.WithCancelCause(cliCtx.Context)
	defer cancel(nil)

	acceptor, err := rig.New(ctx, cfg, Version, cancel)
	if err != nil {
		return rig.NewRuntimeError(fmt.Errorf("failed to create acceptor: %w", err))
	}

	if err := acceptor.Start(ctx); err != nil {
		return err
	}

	// Run-once mode triggers the shutdown callback itself; continuous mode
	// blocks here until interrupted.
	<-ctx.Done()
	if err := acceptor.Stop(context.Background()); err != nil {
		logger.Error("error stopping acceptor", "error", err)
	}
	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}
