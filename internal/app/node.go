package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/lotoze/ktrun/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"github.com/lotoze/ktrun/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"github.com/lotoze/ktrun/internal/adapters/process"   //nolint:depguard // Wired in app layer
	"github.com/lotoze/ktrun/internal/adapters/report"    //nolint:depguard // Wired in app layer
	"github.com/lotoze/ktrun/internal/adapters/teamcity"  //nolint:depguard // Wired in app layer
	"github.com/lotoze/ktrun/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"github.com/lotoze/ktrun/internal/adapters/telemetry/progrock"
	"github.com/lotoze/ktrun/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the components node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the application with the adapters the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			process.NodeID,
			report.NodeID,
			teamcity.NodeID,
			logger.NodeID,
			progrock.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{AppNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.Runner](ctx)
	if err != nil {
		return nil, err
	}
	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}
	clients, err := graft.Dep[ports.ClientFactory](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	tel, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, runner, reporter, clients, log, tel, tracer), nil
}
