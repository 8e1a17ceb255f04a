package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hotline-inc/hotline/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/hotline-inc/hotline/internal/interfaces/http"
)

// The worker runs the archival sweeper without serving HTTP. Deployments
// running several API instances set archive.enabled=false on them and run
// one worker.
func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}

	e, err := bootstrap.Load(env, "")
	if err != nil {
		fmt.Printf("failed to start worker: %v\n", err)
		os.Exit(1)
	}
	defer e.Close()

	log := e.Log
	log.Infow("starting archive worker", "environment", e.Name)

	if !e.Config.Archive.Enabled {
		log.Warnw("archive.enabled is false, the worker has nothing to do")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gdb, err := e.OpenDatabase(ctx)
	if err != nil {
		log.Errorw("failed to initialize database", "error", err)
		return
	}

	container, err := httpRouter.NewContainer(ctx, gdb, e.Config, log)
	if err != nil {
		log.Errorw("failed to build application", "error", err)
		return
	}
	defer container.Shutdown()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	container.Start(ctx)
	log.Infow("archive worker started",
		"interval", e.Config.Archive.Interval,
		"max_age", e.Config.Archive.MaxAge)

	sig := <-sigChan
	log.Infow("received signal, shutting down", "signal", sig)
}
