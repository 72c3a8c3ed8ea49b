package teamcity

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lotoze/ktrun/internal/core/domain"
	"github.com/lotoze/ktrun/internal/core/ports"
)

const NodeID graft.ID = "adapter.client_factory"

// Factory implements ports.ClientFactory.
type Factory struct{}

// NewClient creates a stream client for one test process.
func (Factory) NewClient(reporter ports.Reporter, settings domain.ClientSettings) ports.StreamClient {
	return NewClient(reporter, settings)
}

func init() {
	graft.Register(graft.Node[ports.ClientFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ClientFactory, error) {
			return Factory{}, nil
		},
	})
}
