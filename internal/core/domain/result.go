package domain

import (
	"fmt"
	"time"
)

// TestEventKind discriminates the events produced by the result stream.
type TestEventKind string

const (
	EventSuiteStarted  TestEventKind = "suiteStarted"
	EventSuiteFinished TestEventKind = "suiteFinished"
	EventTestStarted   TestEventKind = "testStarted"
	EventTestFinished  TestEventKind = "testFinished"
	EventTestFailed    TestEventKind = "testFailed"
	EventTestIgnored   TestEventKind = "testIgnored"
	EventOutput        TestEventKind = "output"
)

// TestEvent is a single structured event parsed from the output stream of a
// running test binary.
type TestEvent struct {
	Kind  TestEventKind
	Suite string
	Name  string
	// Message and Details carry failure information for EventTestFailed.
	Message string
	Details string
	// Duration is set for EventTestFinished.
	Duration time.Duration
	// Line carries raw process output for EventOutput.
	Line string
}

// ProcessResult describes the outcome of a process launch.
type ProcessResult struct {
	ExitCode int
	// Skipped is true when no launch was attempted because the test binary
	// does not exist.
	Skipped bool
}

// RunSummary aggregates the results of a whole run.
type RunSummary struct {
	Total    int
	Passed   int
	Failed   int
	Ignored  int
	Duration time.Duration
}

// String renders a one-line human-readable summary.
func (s RunSummary) String() string {
	return fmt.Sprintf("%d tests: %d passed, %d failed, %d ignored in %s",
		s.Total, s.Passed, s.Failed, s.Ignored, s.Duration)
}
