package launch

import (
	"github.com/lotoze/ktrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// Builder accumulates a resolved command, launch options and reporting
// settings, then freezes them into an immutable ExecutionSpec. Validation
// happens once, at Build.
type Builder struct {
	cmd           Command
	workingDir    string
	environment   map[string]string
	trackedEnv    []string
	checkExitCode bool
	client        domain.ClientSettings
	standalone    bool
}

// NewBuilder starts a builder from a resolved command.
func NewBuilder(cmd Command) *Builder {
	return &Builder{cmd: cmd}
}

// LaunchOptions sets the working directory and environment for the launch.
// trackedEnv names the environment keys surfaced for cache-input purposes.
func (b *Builder) LaunchOptions(workingDir string, env map[string]string, trackedEnv []string) *Builder {
	b.workingDir = workingDir
	b.environment = env
	b.trackedEnv = trackedEnv
	return b
}

// CheckExitCode records whether failure detection is delegated to the
// output protocol.
func (b *Builder) CheckExitCode(on bool) *Builder {
	b.checkExitCode = on
	return b
}

// Client sets the reporting client settings.
func (b *Builder) Client(settings domain.ClientSettings) *Builder {
	b.client = settings
	return b
}

// Standalone marks the spec as booting the simulator device on demand.
func (b *Builder) Standalone(on bool) *Builder {
	b.standalone = on
	return b
}

// Build validates the accumulated state and returns the frozen spec.
func (b *Builder) Build() (*domain.ExecutionSpec, error) {
	if b.cmd.Executable == "" {
		return nil, zerr.Wrap(domain.ErrMissingConfiguration, "no executable configured")
	}
	if b.client.TaskName == "" {
		return nil, zerr.Wrap(domain.ErrMissingConfiguration, "reporting client requires a task name")
	}

	return domain.NewExecutionSpec(domain.SpecParams{
		Executable:    b.cmd.Executable,
		Args:          b.cmd.Args,
		TestBinary:    b.cmd.Binary,
		WorkingDir:    b.workingDir,
		Environment:   b.environment,
		TrackedEnv:    b.trackedEnv,
		CheckExitCode: b.checkExitCode,
		Client:        b.client,
		DryRunArgs:    b.cmd.DryRunArgs,
		Standalone:    b.standalone,
	}), nil
}

// BuildSpec resolves a test target and assembles its execution spec in one
// step.
func BuildSpec(target domain.TestTarget) (*domain.ExecutionSpec, error) {
	cmd, err := Resolve(target.Variant, &target.Config)
	if err != nil {
		return nil, err
	}

	standalone := false
	if sim, ok := target.Variant.(domain.SimulatorTest); ok {
		standalone = sim.Standalone
	}

	return NewBuilder(cmd).
		LaunchOptions(target.Config.WorkingDir, target.Config.Environment, target.Config.TrackedEnv).
		CheckExitCode(target.Config.CheckExitCode).
		Client(target.Client).
		Standalone(standalone).
		Build()
}
