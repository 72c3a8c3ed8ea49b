// Package main is the entry point for the ktrun CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"github.com/lotoze/ktrun/cmd/ktrun/commands"
	"github.com/lotoze/ktrun/internal/app"
	"github.com/lotoze/ktrun/internal/core/domain"
	_ "github.com/lotoze/ktrun/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, _, err := graft.ExecuteFor[*app.Components](ctx)
	if err != nil {
		// Logger is not available if initialization failed.
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}

	cli := commands.New(components.App)
	cli.SetConfigHook(components.App.SetConfigPath)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrTestsFailed) {
			// Failures were already reported through the result stream.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
