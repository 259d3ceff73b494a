package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "RIG_ACCEPTOR"

// prefixEnvVars prefixes the env var name with the application prefix.
func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	SuiteSpec = &cli.StringFlag{
		Name:     "suite",
		Value:    "",
		Required: true,
		EnvVars:  prefixEnvVars("SUITE"),
		Usage:    "Path to suite spec file (eg. 'suite.yaml' or 'suite.json')",
	}
	WorkDir = &cli.StringFlag{
		Name:    "workdir",
		Value:   ".",
		EnvVars: prefixEnvVars("WORKDIR"),
		Usage:   "Working directory for test subprocesses",
	}
	HardwareConfig = &cli.StringFlag{
		Name:    "hwcfg",
		Value:   "",
		EnvVars: prefixEnvVars("HWCFG"),
		Usage:   "Path to hardware config file forwarded to every test",
	}
	LogDir = &cli.StringFlag{
		Name:    "logdir",
		Value:   "logs",
		EnvVars: prefixEnvVars("LOGDIR"),
		Usage:   "Directory to store per-test logs",
	}
	ResultFile = &cli.StringFlag{
		Name:    "result-file",
		Value:   "",
		EnvVars: prefixEnvVars("RESULT_FILE"),
		Usage:   "Path to write the suite result artifact (default '<logdir>/suite-result.json')",
	}
	RunInterval = &cli.DurationFlag{
		Name:    "run-interval",
		Value:   0,
		EnvVars: prefixEnvVars("RUN_INTERVAL"),
		Usage:   "Interval between suite runs (e.g. '1h', '30m'). Set to 0 or omit for run-once mode.",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Usage:   "Log level (debug, info, warn, error)",
	}
)

var requiredFlags = []cli.Flag{
	SuiteSpec,
}

var optionalFlags = []cli.Flag{
	WorkDir,
	HardwareConfig,
	LogDir,
	ResultFile,
	RunInterval,
	LogLevel,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
