// Package main provides the entry point for the hxebclass CLI tool.
package main

import (
	"context"
	"os"

	"github.com/hxeb/hxebclass/cmd/hxebclass/app"
	"github.com/hxeb/hxebclass/pkg/constants"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancel on SIGINT/SIGTERM; a sync run stops before its next course.
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	err = application.Execute(ctx, os.Args[1:])

	// Fresh context: the signal context may already be cancelled.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer shutdownCancel()
	if shutdownErr := application.Shutdown(shutdownCtx); shutdownErr != nil {
		application.Logger().Error().Err(shutdownErr).Msg("Shutdown error")
	}

	if err != nil {
		cancel()
		shutdownCancel()
		app.ExitOnError(err)
	}
}
