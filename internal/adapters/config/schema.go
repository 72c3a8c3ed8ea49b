package config

// manifestFile represents the structure of the ktrun.yaml file.
type manifestFile struct {
	Version string               `yaml:"version"`
	Targets map[string]targetDTO `yaml:"targets"`
}

// targetDTO represents a single test target declaration.
type targetDTO struct {
	Kind       string `yaml:"kind"`
	Executable string `yaml:"executable"`

	// Simulator-only fields.
	Device     string `yaml:"device"`
	Debug      bool   `yaml:"debug"`
	Standalone bool   `yaml:"standalone"`

	Args       []string          `yaml:"args"`
	Logger     string            `yaml:"logger"`
	Include    []string          `yaml:"include"`
	Exclude    []string          `yaml:"exclude"`
	Env        map[string]string `yaml:"env"`
	TrackedEnv []string          `yaml:"trackedEnv"`
	WorkingDir string            `yaml:"workingDir"`

	// CheckExitCode defaults to true when omitted.
	CheckExitCode *bool `yaml:"checkExitCode"`

	// Reporting settings.
	ReportSuffix             string `yaml:"reportSuffix"`
	PrependSuiteName         bool   `yaml:"prependSuiteName"`
	FailedOutputIsStacktrace bool   `yaml:"failedOutputIsStacktrace"`
}

const (
	kindHost      = "host"
	kindSimulator = "simulator"
)
