package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lotoze/ktrun/cmd/ktrun/commands"
	"github.com/lotoze/ktrun/internal/adapters/teamcity"
	"github.com/lotoze/ktrun/internal/adapters/telemetry"
	"github.com/lotoze/ktrun/internal/app"
	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports"
	"github.com/lotoze/ktrun/internal/core/ports/mocks"
)

type cliFixture struct {
	loader   *mocks.MockConfigLoader
	runner   *mocks.MockRunner
	reporter *mocks.MockReporter
	cli      *commands.CLI
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &cliFixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		runner:   mocks.NewMockRunner(ctrl),
		reporter: mocks.NewMockReporter(ctrl),
	}
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	a := app.New(f.loader, f.runner, f.reporter, teamcity.Factory{}, logger, telemetry.Noop{}, cliTracer{})
	f.cli = commands.New(a)
	f.cli.SetConfigHook(a.SetConfigPath)
	return f
}

func TestRunCommand_PassesConfigAndTargets(t *testing.T) {
	f := newCLIFixture(t)
	f.loader.EXPECT().Load("custom.yaml").Return(&domain.Manifest{Targets: []domain.TestTarget{{
		Name:    "hostTest",
		Variant: domain.HostTest{Executable: "/bin/hostTest"},
		Client:  domain.ClientSettings{TaskName: "hostTest"},
	}}}, nil)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ProcessResult{}, nil)
	f.reporter.EXPECT().Summary().Return(domain.RunSummary{Total: 1, Passed: 1})

	f.cli.SetArgs([]string{"run", "--config", "custom.yaml", "hostTest"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestRunCommand_PropagatesFailure(t *testing.T) {
	f := newCLIFixture(t)
	f.loader.EXPECT().Load("ktrun.yaml").Return(&domain.Manifest{Targets: []domain.TestTarget{{
		Name:    "hostTest",
		Variant: domain.HostTest{Executable: "/bin/hostTest"},
		Client:  domain.ClientSettings{TaskName: "hostTest"},
	}}}, nil)
	f.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.ProcessResult{}, nil)
	f.reporter.EXPECT().Summary().Return(domain.RunSummary{Total: 1, Failed: 1})

	f.cli.SetArgs([]string{"run"})
	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, domain.ErrTestsFailed)
}

func TestVersionCommand(t *testing.T) {
	f := newCLIFixture(t)
	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
}

func TestUnknownCommand(t *testing.T) {
	f := newCLIFixture(t)
	f.cli.SetArgs([]string{"bogus"})
	require.Error(t, f.cli.Execute(context.Background()))
}

type cliTracer struct{}

func (cliTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, cliSpan{}
}

type cliSpan struct{}

func (cliSpan) End()                     {}
func (cliSpan) RecordError(error)        {}
func (cliSpan) SetAttribute(string, any) {}
