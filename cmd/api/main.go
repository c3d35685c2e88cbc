// Package main provides the entry point for the showcase server.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/aishort/showcase-server/internal/di"
	"github.com/aishort/showcase-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		abort(injector, err, os.Stderr)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Services are shut down in reverse dependency order.
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	log.Info("Server stopped")
}

// abort reports a failed bootstrap and stops whatever was already started.
// The logger may not exist yet, so everything goes to w.
func abort(injector *do.RootScope, err error, w io.Writer) {
	fmt.Fprintf(w, "Failed to bootstrap server: %v\n", err)
	if shutdownErr := injector.Shutdown(); shutdownErr != nil {
		fmt.Fprintf(w, "Shutdown after failed bootstrap: %v\n", shutdownErr)
	}
}
