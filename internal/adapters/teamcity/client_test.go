package teamcity_test

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lotoze/ktrun/internal/adapters/teamcity"
	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports/mocks"
)

// collectingReporter returns a mock reporter that appends every reported
// event to the returned slice.
func collectingReporter(t *testing.T) (*mocks.MockReporter, *[]domain.TestEvent) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reporter := mocks.NewMockReporter(ctrl)
	events := &[]domain.TestEvent{}
	reporter.EXPECT().Report(gomock.Any()).AnyTimes().Do(func(ev domain.TestEvent) {
		*events = append(*events, ev)
	})
	return reporter, events
}

func feed(t *testing.T, w io.Writer, lines ...string) {
	t.Helper()
	for _, line := range lines {
		_, err := w.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
}

func TestClient_FullRun(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "hostTest"})

	feed(t, client,
		"##teamcity[testSuiteStarted name='MySuite']",
		"##teamcity[testStarted name='works']",
		"##teamcity[testFinished name='works' duration='42']",
		"##teamcity[testSuiteFinished name='MySuite']",
	)
	require.NoError(t, client.Close())

	require.Equal(t, []domain.TestEvent{
		{Kind: domain.EventSuiteStarted, Suite: "hostTest"},
		{Kind: domain.EventSuiteStarted, Suite: "hostTest.MySuite"},
		{Kind: domain.EventTestStarted, Suite: "hostTest.MySuite", Name: "works"},
		{Kind: domain.EventTestFinished, Suite: "hostTest.MySuite", Name: "works", Duration: 42 * time.Millisecond},
		{Kind: domain.EventSuiteFinished, Suite: "hostTest.MySuite"},
		{Kind: domain.EventSuiteFinished, Suite: "hostTest"},
	}, *events)
}

func TestClient_FragmentedWrites(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	line := "##teamcity[testStarted name='works']\n"
	for i := 0; i < len(line); i += 7 {
		end := min(i+7, len(line))
		_, err := client.Write([]byte(line[i:end]))
		require.NoError(t, err)
	}
	require.NoError(t, client.Close())

	require.Equal(t, []domain.TestEvent{
		{Kind: domain.EventSuiteStarted, Suite: "t"},
		{Kind: domain.EventTestStarted, Suite: "t", Name: "works"},
		{Kind: domain.EventSuiteFinished, Suite: "t"},
	}, *events)
}

func TestClient_PlainOutput(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	feed(t, client, "hello from the binary")
	require.NoError(t, client.Close())

	require.Equal(t, []domain.TestEvent{
		{Kind: domain.EventSuiteStarted, Suite: "t"},
		{Kind: domain.EventOutput, Suite: "t", Line: "hello from the binary"},
		{Kind: domain.EventSuiteFinished, Suite: "t"},
	}, *events)
}

func TestClient_TrailingLineWithoutNewline(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	_, err := client.Write([]byte("##teamcity[testStarted name='works']"))
	require.NoError(t, err)
	require.NoError(t, client.Close())

	require.Equal(t, domain.EventTestStarted, (*events)[1].Kind)
}

func TestClient_PrependSuiteName(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{
		TaskName:         "t",
		PrependSuiteName: true,
	})

	feed(t, client,
		"##teamcity[testSuiteStarted name='Outer']",
		"##teamcity[testSuiteStarted name='Inner']",
		"##teamcity[testStarted name='works']",
	)
	require.NoError(t, client.Close())

	require.Equal(t, "Outer.Inner.works", (*events)[3].Name)
	require.Equal(t, "t.Outer.Inner", (*events)[3].Suite)
}

func TestClient_RootNameSuffix(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "iosTest", Suffix: "sim"})

	feed(t, client, "output")
	require.NoError(t, client.Close())

	require.Equal(t, "iosTest.sim", (*events)[0].Suite)
}

func TestClient_FailureReportedImmediately(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	feed(t, client,
		"##teamcity[testStarted name='broken']",
		"##teamcity[testFailed name='broken' message='assertion failed' details='at line 3']",
		"##teamcity[testFinished name='broken']",
	)
	require.NoError(t, client.Close())

	fail := (*events)[2]
	require.Equal(t, domain.EventTestFailed, fail.Kind)
	require.Equal(t, "assertion failed", fail.Message)
	require.Equal(t, "at line 3", fail.Details)
}

func TestClient_FailedOutputFoldedIntoDetails(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{
		TaskName:                      "t",
		TreatFailedOutputAsStacktrace: true,
	})

	feed(t, client,
		"##teamcity[testStarted name='broken']",
		"kotlin.AssertionError: boom",
		"    at kfun:broken",
		"##teamcity[testFailed name='broken' message='boom']",
		"##teamcity[testFinished name='broken']",
	)
	require.NoError(t, client.Close())

	// No EventOutput in between: the output lines belong to the failure.
	require.Equal(t, domain.EventTestStarted, (*events)[1].Kind)
	fail := (*events)[2]
	require.Equal(t, domain.EventTestFailed, fail.Kind)
	require.Equal(t, "kotlin.AssertionError: boom\n    at kfun:broken", fail.Details)
	require.Equal(t, domain.EventTestFinished, (*events)[3].Kind)
}

func TestClient_PendingFailureFlushedOnClose(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{
		TaskName:                      "t",
		TreatFailedOutputAsStacktrace: true,
	})

	// The stream ends right after the failure message, no testFinished.
	feed(t, client,
		"##teamcity[testStarted name='crashes']",
		"kotlin.AssertionError: boom",
		"##teamcity[testFailed name='crashes' message='boom']",
	)
	require.NoError(t, client.Close())

	fail := (*events)[2]
	require.Equal(t, domain.EventTestFailed, fail.Kind)
	require.Equal(t, "crashes", fail.Name)
	require.Equal(t, "boom", fail.Message)
	require.Equal(t, "kotlin.AssertionError: boom", fail.Details)
	require.Equal(t, domain.EventSuiteFinished, (*events)[3].Kind)
}

func TestClient_StackTraceParserApplied(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{
		TaskName:                      "t",
		TreatFailedOutputAsStacktrace: true,
		ParseStackTrace: func(output string) (string, bool) {
			return "parsed trace", true
		},
	})

	feed(t, client,
		"##teamcity[testStarted name='broken']",
		"raw output",
		"##teamcity[testFailed name='broken' message='boom']",
		"##teamcity[testFinished name='broken']",
	)
	require.NoError(t, client.Close())

	require.Equal(t, "parsed trace", (*events)[2].Details)
}

func TestClient_PassingTestKeepsOutputCollected(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{
		TaskName:                      "t",
		TreatFailedOutputAsStacktrace: true,
	})

	feed(t, client,
		"##teamcity[testStarted name='fine']",
		"some debug output",
		"##teamcity[testFinished name='fine']",
	)
	require.NoError(t, client.Close())

	// The collected output of a passing test is dropped, not reported.
	for _, ev := range *events {
		require.NotEqual(t, domain.EventOutput, ev.Kind)
	}
}

func TestClient_IgnoredTest(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	feed(t, client, "##teamcity[testIgnored name='skipped']")
	require.NoError(t, client.Close())

	require.Equal(t, domain.EventTestIgnored, (*events)[1].Kind)
	require.Equal(t, "skipped", (*events)[1].Name)
}

func TestClient_UnknownMessageForwardedAsOutput(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	feed(t, client, "##teamcity[buildStatisticValue key='x' value='1']")
	require.NoError(t, client.Close())

	require.Equal(t, domain.EventOutput, (*events)[1].Kind)
}

func TestClient_CarriageReturnStripped(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	_, err := client.Write([]byte("##teamcity[testStarted name='works']\r\n"))
	require.NoError(t, err)
	require.NoError(t, client.Close())

	require.Equal(t, domain.EventTestStarted, (*events)[1].Kind)
	require.Equal(t, "works", (*events)[1].Name)
}

func TestClient_CloseWithoutOutput(t *testing.T) {
	reporter, events := collectingReporter(t)
	client := teamcity.NewClient(reporter, domain.ClientSettings{TaskName: "t"})

	require.NoError(t, client.Close())
	require.Empty(t, *events)
}
