package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

// setupSignalHandler returns a context cancelled on SIGTERM, and on interrupt
// when interrupt is set. Interactive play leaves Ctrl-C to readline.
func setupSignalHandler(logger *log.Logger, interrupt bool) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	signals := []os.Signal{syscall.SIGTERM}
	if interrupt {
		signals = append(signals, os.Interrupt)
	}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, signals...)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
