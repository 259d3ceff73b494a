package rig

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/bench-labs/rig-acceptor/flags"
)

// Config holds the application configuration
type Config struct {
	SuiteSpec      string        // Path to the suite spec file (YAML or JSON)
	WorkDir        string        // Working directory for test subprocesses
	HardwareConfig string        // Optional hardware config path forwarded to tests
	LogDir         string        // Directory to store per-test logs
	ResultFile     string        // Path for the suite result artifact
	RunInterval    time.Duration // Interval between suite runs
	RunOnce        bool          // Indicates if the service should exit after one suite run
	Log            *log.Logger
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger *log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	suiteSpec, err := filepath.Abs(ctx.String(flags.SuiteSpec.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for suite spec: %w", err)
	}
	workDir, err := filepath.Abs(ctx.String(flags.WorkDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for workdir: %w", err)
	}
	logDir, err := filepath.Abs(ctx.String(flags.LogDir.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for log directory: %w", err)
	}

	hwcfg := ctx.String(flags.HardwareConfig.Name)
	if hwcfg != "" {
		hwcfg, err = filepath.Abs(hwcfg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for hardware config: %w", err)
		}
	}

	resultFile := ctx.String(flags.ResultFile.Name)
	if resultFile == "" {
		resultFile = filepath.Join(logDir, "suite-result.json")
	}

	runInterval := ctx.Duration(flags.RunInterval.Name)

	return &Config{
		SuiteSpec:      suiteSpec,
		WorkDir:        workDir,
		HardwareConfig: hwcfg,
		LogDir:         logDir,
		ResultFile:     resultFile,
		RunInterval:    runInterval,
		RunOnce:        runInterval == 0,
		Log:            logger,
	}, nil
}
