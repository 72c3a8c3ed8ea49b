package domain

// Logger names understood by ktest binaries.
const (
	LoggerGTest    = "GTEST"
	LoggerTeamCity = "TEAMCITY"
	LoggerSimple   = "SIMPLE"
	LoggerSilent   = "SILENT"
)

// RunConfiguration carries the per-target settings that shape the generated
// test command line and the process launch.
type RunConfiguration struct {
	// Logger selects the ktest output format. Empty keeps the binary default.
	Logger string

	// CheckExitCode forces the test binary to exit with status zero so that
	// failure detection is delegated entirely to the output protocol.
	CheckExitCode bool

	// IncludePatterns and ExcludePatterns are test filter expressions,
	// joined by commas in the order given.
	IncludePatterns []string
	ExcludePatterns []string

	// Args are user-supplied arguments emitted ahead of all generated
	// flags, verbatim and in order.
	Args []string

	Environment map[string]string

	// TrackedEnv names the Environment keys that participate in input
	// fingerprinting. Untracked keys affect only the runtime environment.
	TrackedEnv []string

	WorkingDir string
}

// TrackedEnvironment returns the tracked subset of Environment.
func (c *RunConfiguration) TrackedEnvironment() map[string]string {
	tracked := make(map[string]string, len(c.TrackedEnv))
	for _, key := range c.TrackedEnv {
		if v, ok := c.Environment[key]; ok {
			tracked[key] = v
		}
	}
	return tracked
}
