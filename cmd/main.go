package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"botics.dev/cli/internal/application/ports"
	"botics.dev/cli/internal/core/exitcode"
	"botics.dev/cli/internal/interfaces/cli"
	"botics.dev/cli/internal/interfaces/di"
)

func main() {
	container, err := di.NewContainer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(int(exitcode.Generic))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan

		// Running commands see the cancellation; rollback still completes
		container.Logger.Log(ports.LogLevelWarn, "Received shutdown signal, cancelling", map[string]interface{}{
			"signal": sig.String(),
		})
		cancel()
	}()

	code := cli.Execute(ctx, container.GetCLIContainer(), os.Args[1:])
	cancel()
	os.Exit(code)
}
