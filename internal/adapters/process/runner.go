// Package process provides the os/exec runner adapter.
package process

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.Runner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

var _ ports.Runner = (*Runner)(nil)

// Run launches the process described by spec.
//
// A test binary missing from disk means the target had no work to do: the
// launch is skipped, logged, and reported as Skipped without error. That
// skip-not-fail behavior is deliberate, test binaries are only produced for
// enabled configurations.
func (r *Runner) Run(ctx context.Context, spec *domain.ExecutionSpec, stdout, stderr io.Writer) (domain.ProcessResult, error) {
	if _, err := os.Stat(spec.TestBinary()); err != nil {
		if os.IsNotExist(err) {
			r.logger.Warn("test binary does not exist, skipping: " + spec.TestBinary())
			return domain.ProcessResult{Skipped: true}, nil
		}
		return domain.ProcessResult{}, zerr.With(zerr.Wrap(err, "failed to stat test binary"), "path", spec.TestBinary())
	}

	args := spec.Args()
	cmd := exec.CommandContext(ctx, spec.Executable(), args...) //nolint:gosec // executable comes from the manifest

	if wd := spec.WorkingDir(); wd != "" {
		cmd.Dir = wd
	}
	cmd.Env = mergeEnvironment(os.Environ(), spec.Environment())
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			return domain.ProcessResult{ExitCode: code},
				zerr.With(zerr.Wrap(err, "test process exited with non-zero status"), "exit_code", code)
		}
		return domain.ProcessResult{ExitCode: -1},
			zerr.With(zerr.Wrap(err, "failed to launch test process"), "executable", spec.Executable())
	}

	return domain.ProcessResult{}, nil
}

// mergeEnvironment overlays the spec environment on top of the system one.
func mergeEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}
