// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"github.com/lotoze/ktrun/internal/core/domain"
)

// Runner launches test processes described by an execution spec.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run launches the process and streams its output to stdout and stderr.
	//
	// A test binary that does not exist on disk is a skipped result, not an
	// error. A non-zero exit status is an infrastructure error carrying the
	// exit code; test-level failures arrive through the output stream.
	Run(ctx context.Context, spec *domain.ExecutionSpec, stdout, stderr io.Writer) (domain.ProcessResult, error)
}
