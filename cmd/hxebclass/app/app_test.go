package app

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxeb/hxebclass/internal/gclassroom"
	"github.com/hxeb/hxebclass/internal/orgdb"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
	"github.com/hxeb/hxebclass/pkg/roster"
	"github.com/hxeb/hxebclass/pkg/sync"
)

func testConfig() *Config {
	return &Config{
		LogFormat: "json",
		LogOutput: "discard",
		SeasonID:  12,
		DB:        orgdb.Config{Driver: constants.DriverSQLite, Name: ":memory:"},
		Classroom: ClassroomConfig{
			Endpoint:    "http://127.0.0.1:1",
			AccessToken: "test-token",
			Timeout:     constants.DefaultHTTPTimeout,
			PageSize:    constants.DefaultPageSize,
		},
		Sync: SyncConfig{TeacherWhitelist: []string{"admin@example.org"}},
	}
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	isolateEnv(t)
	opts = append([]Option{WithConfig(testConfig()), WithLogger(logging.NewNopLogger())}, opts...)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	require.NoError(t, err)
	return app
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	assert.NotNil(t, app.Config())

	season, err := app.SeasonID()
	require.NoError(t, err)
	assert.Equal(t, 12, season)
	assert.Equal(t, []string{"admin@example.org"}, app.SyncSettings().TeacherWhitelist)
}

func TestApp_SeasonIDUnset(t *testing.T) {
	config := testConfig()
	config.SeasonID = 0
	app := newTestApp(t, WithConfig(config))

	_, err := app.SeasonID()
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestApp_GatewayWithStaticToken(t *testing.T) {
	app := newTestApp(t)

	gw, err := app.Gateway(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &gclassroom.Client{}, gw)

	again, err := app.Gateway(context.Background())
	require.NoError(t, err)
	assert.Same(t, gw, again)
}

func TestApp_RosterSQLite(t *testing.T) {
	app := newTestApp(t)

	src, err := app.Roster(context.Background())
	require.NoError(t, err)
	assert.IsType(t, &orgdb.DB{}, src)
	require.NoError(t, app.Shutdown(context.Background()))
}

func TestExecute_Version(t *testing.T) {
	app := newTestApp(t)

	out, err := run(t, app, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hxebclass 1.0.0")
	assert.NotContains(t, out, "abc123")

	out, err = run(t, app, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "abc123")
}

func TestExecute_InvalidFormat(t *testing.T) {
	app := newTestApp(t)
	_, err := run(t, app, "-o", "csv", "version")
	assert.Error(t, err)
}

func TestExecute_Sync(t *testing.T) {
	mem := classroom.NewMemory()
	src := &roster.Memory{Classes: []roster.Arrangement{
		{SeasonID: 12, ClassID: 301, ClassName: "Biology", SeasonName: "Fall 2024", TeacherEmail: "bio@example.org"},
	}}
	app := newTestApp(t, WithGateway(mem), WithRoster(src))

	out, err := run(t, app, "-o", "json", "sync", "--all", "--sync-teacher")
	require.NoError(t, err)

	var res sync.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Items, 1)
	assert.Equal(t, sync.ActionCreated, res.Items[0].Action)
	assert.NotEmpty(t, res.RunID)

	// The owner enrolled on create stays without being whitelisted.
	assert.ElementsMatch(t, []string{classroom.DefaultOwnerEmail, "bio@example.org"}, mem.Teachers("p:12-301"))
	assert.Zero(t, mem.CallCount("RemoveTeacher"))
}

func TestExecute_SyncWithoutScope(t *testing.T) {
	mem := classroom.NewMemory()
	app := newTestApp(t, WithGateway(mem), WithRoster(&roster.Memory{}))

	_, err := run(t, app, "sync")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, mem.Calls())
}

func TestExecute_ConfigFlag(t *testing.T) {
	app := newTestApp(t, WithGateway(classroom.NewMemory()), WithRoster(&roster.Memory{}))
	path := writeConfig(t, "season_id: 44\n")

	_, err := run(t, app, "--config", path, "-o", "json", "org", "courses")
	require.NoError(t, err)
	assert.Equal(t, 44, app.Config().SeasonID)
	assert.Equal(t, path, app.Config().ConfigFile)
}
