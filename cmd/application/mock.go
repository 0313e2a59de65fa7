package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/roster"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	GatewayFunc         func(context.Context) (classroom.Gateway, error)
	RosterFunc          func(context.Context) (roster.Source, error)
	SeasonIDFunc        func() (int, error)
	SyncSettingsFunc    func() SyncSettings
	CredentialsFileFunc func() string
	LoggerFunc          func() *zerolog.Logger
	OutputFormatFunc    func() string
	VersionFunc         func() string
}

var _ Application = (*Mock)(nil)

// Gateway returns a gateway using the mock function or an error.
func (m *Mock) Gateway(ctx context.Context) (classroom.Gateway, error) {
	if m.GatewayFunc != nil {
		return m.GatewayFunc(ctx)
	}
	return nil, errors.NewConfigError("classroom", "no gateway configured", nil)
}

// Roster returns an org source using the mock function or an error.
func (m *Mock) Roster(ctx context.Context) (roster.Source, error) {
	if m.RosterFunc != nil {
		return m.RosterFunc(ctx)
	}
	return nil, errors.NewConfigError("db", "no org database configured", nil)
}

// SeasonID returns the season using the mock function or an error.
func (m *Mock) SeasonID() (int, error) {
	if m.SeasonIDFunc != nil {
		return m.SeasonIDFunc()
	}
	return 0, errors.NewConfigError("season_id", "season_id is not set", nil)
}

// SyncSettings returns settings using the mock function or zero settings.
func (m *Mock) SyncSettings() SyncSettings {
	if m.SyncSettingsFunc != nil {
		return m.SyncSettingsFunc()
	}
	return SyncSettings{}
}

// CredentialsFile returns the file using the mock function or "".
func (m *Mock) CredentialsFile() string {
	if m.CredentialsFileFunc != nil {
		return m.CredentialsFileFunc()
	}
	return ""
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "json".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "json"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
