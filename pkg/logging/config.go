package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/hxeb/hxebclass/pkg/constants"
)

// Config selects level, encoding and destination of log output.
type Config struct {
	Level     string // trace, debug, info, warn, error or off
	Format    string // json, console or auto
	Output    string // stderr, stdout, discard or a file path
	NoColor   bool
	AddCaller bool
}

// NewLoggerFromConfig builds a logger and sets zerolog's global level to match.
// Unknown levels fall back to info; an unwritable output file falls back to stderr.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = &Config{}
	}
	level := levelOf(cfg.Level)
	zerolog.SetGlobalLevel(level)

	lc := zerolog.New(writerFor(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		lc = lc.Caller()
	}
	return lc.Logger()
}

func writerFor(cfg *Config) io.Writer {
	dest, tty := destination(cfg.Output)

	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
	case "", "auto":
		if !tty {
			return dest
		}
	default:
		return dest
	}

	return zerolog.ConsoleWriter{
		Out:        dest,
		TimeFormat: time.Kitchen,
		NoColor:    cfg.NoColor || os.Getenv("NO_COLOR") != "",
	}
}

// destination resolves an output name and reports whether it is a terminal.
func destination(name string) (io.Writer, bool) {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd())
	case "stdout":
		return os.Stdout, isatty.IsTerminal(os.Stdout.Fd())
	case "discard", "none":
		return io.Discard, false
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr, isatty.IsTerminal(os.Stderr.Fd())
	}
	return f, false
}

func levelOf(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "", "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "off", "none":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
