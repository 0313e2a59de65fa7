// Package logging provides structured logging for hxebclass using zerolog.
// Console output is used when stderr is a terminal and JSON otherwise,
// so sync runs can be piped into a log collector unchanged.
//
// Example usage:
//
//	ctx = logging.WithAlias(ctx, "p:12-301")
//	logging.FromContext(ctx).Debug().Msg("Listing teachers")
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// base is the process logger used when a context carries none.
var base = NewLoggerFromConfig(&Config{
	Level:  os.Getenv("LOG_LEVEL"),
	Format: os.Getenv("LOG_FORMAT"),
})

// Default returns the process logger.
func Default() *zerolog.Logger {
	return &base
}

// SetDefault replaces the process logger and zerolog's global one.
func SetDefault(logger zerolog.Logger) {
	base = logger
	log.Logger = logger
}

// Debug starts a debug event on the process logger.
func Debug() *zerolog.Event { return base.Debug() }

// Info starts an info event on the process logger.
func Info() *zerolog.Event { return base.Info() }

// Warn starts a warning event on the process logger.
func Warn() *zerolog.Event { return base.Warn() }

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
