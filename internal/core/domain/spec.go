package domain

// ClientSettings configure how the test-result stream client names and
// attributes the results it produces.
type ClientSettings struct {
	// TaskName is the root node name reported for the run.
	TaskName string
	// Suffix, when set, is appended to TaskName with a dot separator.
	Suffix string
	// PrependSuiteName qualifies test names with their enclosing suites.
	PrependSuiteName bool
	// TreatFailedOutputAsStacktrace folds output lines of a failed test
	// into the failure details.
	TreatFailedOutputAsStacktrace bool
	// ParseStackTrace extracts a stack trace from collected failure output.
	// A nil parser keeps the output verbatim.
	ParseStackTrace func(output string) (string, bool)
}

// RootName returns the root node name including the optional suffix.
func (c ClientSettings) RootName() string {
	if c.Suffix == "" {
		return c.TaskName
	}
	return c.TaskName + "." + c.Suffix
}

// SpecParams collects everything needed to assemble an ExecutionSpec.
type SpecParams struct {
	Executable    string
	Args          []string
	TestBinary    string
	WorkingDir    string
	Environment   map[string]string
	TrackedEnv    []string
	CheckExitCode bool
	Client        ClientSettings
	DryRunArgs    []string
	Standalone    bool
}

// ExecutionSpec is the fully resolved description of a test process launch
// and of how its output stream should be interpreted. It is immutable once
// built; accessors return defensive copies of slices and maps.
type ExecutionSpec struct {
	executable    string
	args          []string
	testBinary    string
	workingDir    string
	environment   map[string]string
	trackedEnv    []string
	checkExitCode bool
	client        ClientSettings
	dryRunArgs    []string
	standalone    bool
}

// NewExecutionSpec freezes the given parameters into an ExecutionSpec.
func NewExecutionSpec(p SpecParams) *ExecutionSpec {
	env := make(map[string]string, len(p.Environment))
	for k, v := range p.Environment {
		env[k] = v
	}
	return &ExecutionSpec{
		executable:    p.Executable,
		args:          copyStrings(p.Args),
		testBinary:    p.TestBinary,
		workingDir:    p.WorkingDir,
		environment:   env,
		trackedEnv:    copyStrings(p.TrackedEnv),
		checkExitCode: p.CheckExitCode,
		client:        p.Client,
		dryRunArgs:    copyStrings(p.DryRunArgs),
		standalone:    p.Standalone,
	}
}

// Executable returns the path of the process to launch. For simulator runs
// this is the simulator-control tool, not the test binary.
func (s *ExecutionSpec) Executable() string { return s.executable }

// Args returns the ordered argument list.
func (s *ExecutionSpec) Args() []string { return copyStrings(s.args) }

// TestBinary returns the path of the produced test executable. Execution is
// skipped when this file does not exist.
func (s *ExecutionSpec) TestBinary() string { return s.testBinary }

// WorkingDir returns the working directory for the launch.
func (s *ExecutionSpec) WorkingDir() string { return s.workingDir }

// Environment returns the environment overrides applied on top of the
// system environment.
func (s *ExecutionSpec) Environment() map[string]string {
	env := make(map[string]string, len(s.environment))
	for k, v := range s.environment {
		env[k] = v
	}
	return env
}

// TrackedEnv returns the names of environment keys that participate in
// input fingerprinting.
func (s *ExecutionSpec) TrackedEnv() []string { return copyStrings(s.trackedEnv) }

// TrackedEnvironment returns the tracked subset of the environment.
func (s *ExecutionSpec) TrackedEnvironment() map[string]string {
	tracked := make(map[string]string, len(s.trackedEnv))
	for _, key := range s.trackedEnv {
		if v, ok := s.environment[key]; ok {
			tracked[key] = v
		}
	}
	return tracked
}

// CheckExitCode reports whether failure detection is delegated to the
// output protocol.
func (s *ExecutionSpec) CheckExitCode() bool { return s.checkExitCode }

// Client returns the reporting client settings.
func (s *ExecutionSpec) Client() ClientSettings { return s.client }

// DryRunArgs returns the shortened argument list used to probe simulator
// availability, or nil when the spec has no dry-run variant.
func (s *ExecutionSpec) DryRunArgs() []string { return copyStrings(s.dryRunArgs) }

// Standalone reports whether the simulator device is booted on demand.
func (s *ExecutionSpec) Standalone() bool { return s.standalone }

// DryRun derives the spec used to probe device availability without a full
// test run. It returns nil when no dry-run variant exists.
func (s *ExecutionSpec) DryRun() *ExecutionSpec {
	if len(s.dryRunArgs) == 0 {
		return nil
	}
	probe := *s
	probe.args = copyStrings(s.dryRunArgs)
	probe.dryRunArgs = nil
	return &probe
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
