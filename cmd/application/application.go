// Package application provides the application interface for hxebclass commands.
//
// The Application interface is the contract between the app layer and the
// command packages. Commands accept it instead of the concrete App so they
// can be tested with Mock, an in-memory gateway and a SQLite org database.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            gw, err := app.Gateway(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use gw
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mem := classroom.NewMemory()
//	mock := &application.Mock{
//	    GatewayFunc: func(context.Context) (classroom.Gateway, error) {
//	        return mem, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/roster"
)

// Application provides what commands need from the app.
// The App struct from cmd/hxebclass/app implements it.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Gateway returns the remote course gateway, connecting on first use.
	Gateway(ctx context.Context) (classroom.Gateway, error)

	// Roster returns the org data source, opening the database on first use.
	Roster(ctx context.Context) (roster.Source, error)

	// SeasonID returns the configured season or a config error when unset.
	SeasonID() (int, error)

	// SyncSettings returns the sync policy settings from configuration.
	SyncSettings() SyncSettings

	// CredentialsFile returns the configured credentials file ("" for ADC).
	CredentialsFile() string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (json, yaml, table, wide or "").
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// SyncSettings are the configured inputs of a sync run.
type SyncSettings struct {
	// TeacherWhitelist lists teachers that reconciliation never removes.
	TeacherWhitelist []string
	// DescriptionHeading sends the English class name as the description heading.
	DescriptionHeading bool
	// MetricsFile is a Prometheus textfile written after each run.
	MetricsFile string
}
