// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/lotoze/ktrun/internal/adapters/config"
	_ "github.com/lotoze/ktrun/internal/adapters/logger"
	_ "github.com/lotoze/ktrun/internal/adapters/process"
	_ "github.com/lotoze/ktrun/internal/adapters/report"
	_ "github.com/lotoze/ktrun/internal/adapters/teamcity"
	_ "github.com/lotoze/ktrun/internal/adapters/telemetry"
	_ "github.com/lotoze/ktrun/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "github.com/lotoze/ktrun/internal/app"
)
