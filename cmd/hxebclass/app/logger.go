package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hxeb/hxebclass/pkg/logging"
)

// NewLogger builds the CLI logger. Level precedence: --log-level, then
// -v/-q (both together mean warn), then LOG_LEVEL, then info.
func NewLogger(config *Config) zerolog.Logger {
	level := determineLogLevel(config)
	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

func determineLogLevel(config *Config) string {
	switch {
	case config.LogLevel != "":
		level := validateLogLevel(config.LogLevel)
		if level != config.LogLevel {
			fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using %q\n", config.LogLevel, level)
		}
		return level
	case config.Verbose && config.Quiet:
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet given, using --quiet")
		return "warn"
	case config.Verbose:
		return "debug"
	case config.Quiet:
		return "warn"
	case config.EnvLogLevel != "":
		return validateLogLevel(config.EnvLogLevel)
	}
	return "info"
}

func validateLogLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}
	return "info"
}
