package report

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lotoze/ktrun/internal/adapters/logger"
	"github.com/lotoze/ktrun/internal/core/ports"
)

const NodeID graft.ID = "adapter.reporter"

func init() {
	graft.Register(graft.Node[ports.Reporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Reporter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewConsole(log), nil
		},
	})
}
