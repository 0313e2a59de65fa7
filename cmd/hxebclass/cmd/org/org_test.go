package org

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/roster"
)

func testSource() *roster.Memory {
	return &roster.Memory{
		Classes: []roster.Arrangement{
			{SeasonID: 12, ClassID: 301, ClassName: "Biology", SeasonName: "Fall 2024"},
			{SeasonID: 12, ClassID: 302, ClassName: "Math", SeasonName: "Fall 2024"},
		},
		Students: []roster.Registration{
			{SeasonID: 12, ClassID: 301, ClassName: "Biology", StudentID: 7, FirstName: "Amy"},
		},
	}
}

func execute(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newApp(src roster.Source) *application.Mock {
	return &application.Mock{
		RosterFunc:   func(context.Context) (roster.Source, error) { return src, nil },
		SeasonIDFunc: func() (int, error) { return 12, nil },
	}
}

func TestCourses(t *testing.T) {
	out, err := execute(t, newApp(testSource()), "courses")
	require.NoError(t, err)

	var arrs []roster.Arrangement
	require.NoError(t, json.Unmarshal([]byte(out), &arrs))
	assert.Len(t, arrs, 2)
}

func TestCourses_ClassFilter(t *testing.T) {
	out, err := execute(t, newApp(testSource()), "courses", "--class", "302")
	require.NoError(t, err)

	var arrs []roster.Arrangement
	require.NoError(t, json.Unmarshal([]byte(out), &arrs))
	require.Len(t, arrs, 1)
	assert.Equal(t, "Math", arrs[0].ClassName)
}

func TestCourses_Table(t *testing.T) {
	app := newApp(testSource())
	app.OutputFormatFunc = func() string { return "table" }

	out, err := execute(t, app, "courses")
	require.NoError(t, err)
	assert.Contains(t, out, "p:12-301")
	assert.Contains(t, out, "Math")
}

func TestRegistrations(t *testing.T) {
	out, err := execute(t, newApp(testSource()), "registrations")
	require.NoError(t, err)

	var regs []roster.Registration
	require.NoError(t, json.Unmarshal([]byte(out), &regs))
	require.Len(t, regs, 1)
	assert.Equal(t, "Amy", regs[0].FirstName)
}

func TestCourses_MissingSeason(t *testing.T) {
	app := &application.Mock{}
	_, err := execute(t, app, "courses")
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}
