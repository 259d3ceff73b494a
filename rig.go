// Package rig wires the suite registry, runner and reporters into the
// rig-acceptor service.
package rig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bench-labs/rig-acceptor/logging"
	"github.com/bench-labs/rig-acceptor/registry"
	"github.com/bench-labs/rig-acceptor/reporting"
	"github.com/bench-labs/rig-acceptor/runner"
	"github.com/bench-labs/rig-acceptor/types"
)

// Acceptor runs acceptance suites against the device under test, either
// once or periodically at a configured interval.
type Acceptor struct {
	ctx      context.Context
	config   *Config
	version  string
	registry *registry.Registry
	runner   runner.SuiteRunner
	result   *types.SuiteResult

	running atomic.Bool
	done    chan struct{}
	wg      sync.WaitGroup

	shutdownCallback func(error) // Callback to signal application shutdown
}

// New builds the acceptor service: registry, file logger and suite runner.
// Configuration problems surface here, before any test executes.
func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*Acceptor, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	config.Log.Debug("creating acceptor",
		"suiteSpec", config.SuiteSpec,
		"workDir", config.WorkDir,
		"runInterval", config.RunInterval,
		"runOnce", config.RunOnce)

	reg, err := registry.NewRegistry(registry.Config{
		Log:           config.Log,
		SuiteSpecFile: config.SuiteSpec,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create registry: %w", err)
	}

	fileLogger, err := logging.NewFileLogger(config.LogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file logger: %w", err)
	}

	suiteRunner, err := runner.NewSuiteRunner(runner.Config{
		Registry:       reg,
		WorkDir:        config.WorkDir,
		HardwareConfig: config.HardwareConfig,
		Log:            config.Log,
		FileLogger:     fileLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create suite runner: %w", err)
	}

	return &Acceptor{
		ctx:              ctx,
		config:           config,
		version:          version,
		registry:         reg,
		runner:           suiteRunner,
		done:             make(chan struct{}),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start runs the suite immediately and, unless in run-once mode, keeps
// running it at the configured interval.
func (a *Acceptor) Start(ctx context.Context) error {
	a.ctx = ctx
	a.done = make(chan struct{})
	a.running.Store(true)

	if a.config.RunOnce {
		a.config.Log.Info("starting rig-acceptor in run-once mode", "version", a.version)
	} else {
		a.config.Log.Info("starting rig-acceptor in continuous mode", "version", a.version, "interval", a.config.RunInterval)
	}

	if err := a.runSuite(); err != nil {
		a.config.Log.Error("runtime error running suite", "error", err)
		return NewRuntimeError(err)
	}

	if a.config.RunOnce {
		a.config.Log.Info("suite completed, exiting (run-once mode)")
		if a.result != nil && a.result.Status() != types.TestStatusPass {
			return NewTestFailureError(a.result.String())
		}
		go func() {
			a.shutdownCallback(nil)
		}()
		return nil
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		for {
			select {
			case <-time.After(a.config.RunInterval):
				if !a.running.Load() {
					return
				}
				a.config.Log.Info("running periodic suite")
				if err := a.runSuite(); err != nil {
					a.config.Log.Error("error running periodic suite", "error", err)
				}

			case <-a.done:
				a.config.Log.Debug("done signal received, stopping periodic runner")
				return

			case <-ctx.Done():
				a.config.Log.Debug("context canceled, stopping periodic runner")
				a.running.Store(false)
				return
			}
		}
	}()
	a.config.Log.Debug("rig-acceptor started")
	return nil
}

// runSuite runs the whole suite once and processes the results.
func (a *Acceptor) runSuite() error {
	result, err := a.runner.RunSuite(a.ctx)
	if err != nil {
		return err
	}
	a.result = result

	renderResultsTable(os.Stdout, result)
	fmt.Println(result.String())

	if err := reporting.WriteSuiteResult(a.config.ResultFile, result); err != nil {
		// The artifact is best-effort; the verdict stands without it.
		a.config.Log.Error("failed to write suite result artifact", "error", err)
	} else {
		a.config.Log.Info("suite result written", "path", a.config.ResultFile)
	}

	a.config.Log.Info("suite run completed", "run_id", result.RunID, "status", result.Status())
	return nil
}

// Result returns the most recent suite result, or nil before the first run
// completes.
func (a *Acceptor) Result() *types.SuiteResult {
	return a.result
}

// Stop stops the acceptor service.
func (a *Acceptor) Stop(ctx context.Context) error {
	a.config.Log.Info("stopping rig-acceptor")

	if !a.running.Load() {
		a.config.Log.Debug("service already stopped, nothing to do")
		return nil
	}

	a.running.Store(false)
	close(a.done)

	a.config.Log.Info("rig-acceptor stopped")
	return nil
}

// Stopped returns true if the acceptor service is stopped.
func (a *Acceptor) Stopped() bool {
	return !a.running.Load()
}

// WaitForShutdown blocks until all goroutines have terminated.
// This is useful in tests to ensure complete cleanup before moving on.
func (a *Acceptor) WaitForShutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		a.config.Log.Warn("timed out waiting for goroutines to terminate", "error", ctx.Err())
		return ctx.Err()
	}
}
