package domain

// TestVariant describes the execution environment of a native test binary.
// The set is closed: a test binary either runs directly on the build host or
// inside an OS-provided device simulator.
type TestVariant interface {
	// Binary returns the path of the native test executable.
	Binary() string

	testVariant()
}

// HostTest runs the test binary directly on the build machine.
type HostTest struct {
	Executable string
}

// Binary returns the path of the native test executable.
func (h HostTest) Binary() string { return h.Executable }

func (HostTest) testVariant() {}

// SimulatorTest runs the test binary inside a device simulator spawned
// through the system simulator-control tool.
type SimulatorTest struct {
	Executable string
	// Device identifies the simulator device to spawn into. Required.
	Device string
	// DebugMode makes the spawned process wait for a debugger to attach.
	DebugMode bool
	// Standalone boots the device if it is not already booted.
	Standalone bool
}

// Binary returns the path of the native test executable.
func (s SimulatorTest) Binary() string { return s.Executable }

func (SimulatorTest) testVariant() {}
