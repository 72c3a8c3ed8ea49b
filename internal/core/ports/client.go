package ports

import (
	"io"

	"github.com/lotoze/ktrun/internal/core/domain"
)

// StreamClient consumes the raw stdout stream of a test process and turns
// it into test events. Close flushes any buffered partial line.
type StreamClient interface {
	io.Writer
	Close() error
}

// ClientFactory creates a stream client bound to a reporter for one run.
type ClientFactory interface {
	NewClient(reporter Reporter, settings domain.ClientSettings) StreamClient
}
