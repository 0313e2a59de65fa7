package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var loggerKey ctxKey

// WithLogger stores logger in ctx. A nil logger stores the process logger.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the process logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && l != nil {
			return l
		}
	}
	return Default()
}

// WithRunID tags the context logger with a sync run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("run_id", runID) })
}

// WithAlias tags the context logger with a remote course alias.
func WithAlias(ctx context.Context, alias string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("alias", alias) })
}

// WithClass tags the context logger with org season and class identifiers.
func WithClass(ctx context.Context, seasonID, classID int) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Int("season_id", seasonID).Int("class_id", classID)
	})
}

func with(ctx context.Context, fn func(zerolog.Context) zerolog.Context) context.Context {
	l := fn(FromContext(ctx).With()).Logger()
	return WithLogger(ctx, &l)
}
