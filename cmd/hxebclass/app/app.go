// Package app provides the application context and dependency management
// for the hxebclass CLI. It centralizes configuration, logging and the
// lazily created org database and Classroom connections.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/auth"
	"github.com/hxeb/hxebclass/internal/gclassroom"
	"github.com/hxeb/hxebclass/internal/orgdb"
	"github.com/hxeb/hxebclass/internal/transport"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
	"github.com/hxeb/hxebclass/pkg/roster"
)

// App represents the hxebclass application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Connections (lazy-initialized)
	mu      sync.Mutex
	gateway classroom.Gateway
	roster  roster.Source
	closers []func() error
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format flag value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// SeasonID returns the configured season.
func (a *App) SeasonID() (int, error) {
	if a.config.SeasonID <= 0 {
		return 0, errors.NewConfigError("season_id", "season_id is not set (config file, HXEBCLASS_SEASON_ID or SEASON_ID)", nil)
	}
	return a.config.SeasonID, nil
}

// SyncSettings returns the sync section of the configuration.
func (a *App) SyncSettings() application.SyncSettings {
	return application.SyncSettings{
		TeacherWhitelist:   append([]string(nil), a.config.Sync.TeacherWhitelist...),
		DescriptionHeading: a.config.Sync.DescriptionHeading,
		MetricsFile:        a.config.Sync.MetricsFile,
	}
}

// CredentialsFile returns the configured Classroom credentials file.
func (a *App) CredentialsFile() string {
	return a.config.Classroom.CredentialsFile
}

// Gateway returns the Classroom gateway, detecting credentials on first use.
func (a *App) Gateway(ctx context.Context) (classroom.Gateway, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.gateway != nil {
		return a.gateway, nil
	}

	cfg := a.config.Classroom
	var authenticator transport.Authenticator
	if cfg.AccessToken != "" {
		authenticator = &transport.BearerAuth{Token: cfg.AccessToken}
	} else {
		creds, err := auth.Detect(ctx, auth.Options{
			CredentialsFile: cfg.CredentialsFile,
			Subject:         cfg.Subject,
		})
		if err != nil {
			return nil, err
		}
		authenticator = &transport.TokenAuth{Provider: creds}
	}

	tc := transport.New(authenticator,
		transport.WithTimeout(cfg.Timeout),
		transport.WithUserAgent("hxebclass/"+a.version),
	)
	a.gateway = gclassroom.New(tc,
		gclassroom.WithEndpoint(cfg.Endpoint),
		gclassroom.WithPageSize(cfg.PageSize),
	)
	a.logger.Debug().
		Str("endpoint", cfg.Endpoint).
		Msg("Classroom client ready")
	return a.gateway, nil
}

// Roster returns the org data source, connecting on first use.
func (a *App) Roster(ctx context.Context) (roster.Source, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.roster != nil {
		return a.roster, nil
	}

	db, err := orgdb.Open(logging.WithLogger(ctx, a.logger), a.config.DB)
	if err != nil {
		return nil, err
	}
	a.roster = db
	a.closers = append(a.closers, db.Close)
	return db, nil
}

// Shutdown closes connections opened by the app.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var firstErr error
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close connection during shutdown")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithGateway sets the Classroom gateway (useful for testing).
func WithGateway(gw classroom.Gateway) Option {
	return func(a *App) error {
		a.gateway = gw
		return nil
	}
}

// WithRoster sets the org data source (useful for testing).
func WithRoster(src roster.Source) Option {
	return func(a *App) error {
		a.roster = src
		return nil
	}
}
