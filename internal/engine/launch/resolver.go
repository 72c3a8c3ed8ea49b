// Package launch turns test variants and run configurations into concrete
// commands and execution specs for native test binaries.
package launch

import (
	"strings"

	"github.com/lotoze/ktrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// Simulator control invocation. Test binaries are spawned through xcrun's
// simctl subcommand; the "--" separator demarcates simctl arguments from
// arguments forwarded to the spawned binary and must appear exactly once.
const (
	simulatorControlPath = "/usr/bin/xcrun"
	simctlSubcommand     = "simctl"
	spawnSubcommand      = "spawn"
	waitForDebuggerFlag  = "--wait-for-debugger"
	standaloneFlag       = "--standalone"
	argSeparator         = "--"
)

// Flags understood by ktest binaries.
const (
	noExitCodeFlag           = "--ktest_no_exit_code"
	loggerFlagPrefix         = "--ktest_logger="
	filterFlagPrefix         = "--ktest_gradle_filter="
	negativeFilterFlagPrefix = "--ktest_negative_gradle_filter="
)

// Command is a resolved (executable, argv) pair. Binary is the produced
// test executable, which for simulator runs differs from Executable.
// DryRunArgs, when present, is the shortened argument list used to probe
// simulator availability without running the suite.
type Command struct {
	Executable string
	Args       []string
	Binary     string
	DryRunArgs []string
}

// Resolve maps a test variant and its run configuration to the concrete
// command to launch. It is a pure function of its inputs.
func Resolve(variant domain.TestVariant, cfg *domain.RunConfiguration) (Command, error) {
	switch v := variant.(type) {
	case domain.HostTest:
		return Command{
			Executable: v.Executable,
			Args:       ktestArgs(cfg),
			Binary:     v.Executable,
		}, nil
	case domain.SimulatorTest:
		return resolveSimulator(v, cfg)
	default:
		return Command{}, zerr.Wrap(domain.ErrMissingConfiguration, "unsupported test variant")
	}
}

func resolveSimulator(v domain.SimulatorTest, cfg *domain.RunConfiguration) (Command, error) {
	if v.Device == "" {
		return Command{}, zerr.With(
			zerr.Wrap(domain.ErrMissingConfiguration, "simulator test requires a device id"),
			"executable", v.Executable,
		)
	}

	prefix := []string{simctlSubcommand, spawnSubcommand}
	if v.DebugMode {
		prefix = append(prefix, waitForDebuggerFlag)
	}
	if v.Standalone {
		prefix = append(prefix, standaloneFlag)
	}
	prefix = append(prefix, v.Device, v.Executable, argSeparator)

	args := make([]string, 0, len(prefix))
	args = append(args, prefix...)
	args = append(args, ktestArgs(cfg)...)

	return Command{
		Executable: simulatorControlPath,
		Args:       args,
		Binary:     v.Executable,
		DryRunArgs: prefix,
	}, nil
}

// ktestArgs assembles the argument sequence forwarded to the test binary.
// Order is fixed: user arguments come first so callers can front-load
// overrides such as debugger attachment flags, then the generated flags.
func ktestArgs(cfg *domain.RunConfiguration) []string {
	args := make([]string, 0, len(cfg.Args)+4)
	args = append(args, cfg.Args...)

	if cfg.CheckExitCode {
		args = append(args, noExitCodeFlag)
	}
	if cfg.Logger != "" {
		args = append(args, loggerFlagPrefix+cfg.Logger)
	}
	if len(cfg.IncludePatterns) > 0 {
		args = append(args, filterFlagPrefix+strings.Join(cfg.IncludePatterns, ","))
	}
	if len(cfg.ExcludePatterns) > 0 {
		args = append(args, negativeFilterFlagPrefix+strings.Join(cfg.ExcludePatterns, ","))
	}
	return args
}
