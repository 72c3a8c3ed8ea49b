package telemetry

import (
	"context"
	"io"

	"github.com/lotoze/ktrun/internal/core/ports"
)

// Noop is a ports.Telemetry implementation that records nothing. Used when
// progress rendering is disabled and in tests.
type Noop struct{}

var _ ports.Telemetry = Noop{}

// Record returns an inert vertex.
func (Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Stdout() io.Writer { return io.Discard }
func (noopVertex) Stderr() io.Writer { return io.Discard }
func (noopVertex) Complete(error)    {}
func (noopVertex) Skipped()          {}
