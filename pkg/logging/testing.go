package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger records JSON log output for assertions.
type TestLogger struct {
	*zerolog.Logger
	Buffer *bytes.Buffer
}

// NewTestLogger returns a trace-level logger writing into a buffer.
// The global level is lowered for the test and restored on cleanup.
func NewTestLogger(t testing.TB) *TestLogger {
	t.Helper()

	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	buf := new(bytes.Buffer)
	l := zerolog.New(buf).Level(zerolog.TraceLevel)
	return &TestLogger{Logger: &l, Buffer: buf}
}

// Output returns everything logged so far.
func (tl *TestLogger) Output() string { return tl.Buffer.String() }

// AssertContains fails t unless the output contains substr.
func (tl *TestLogger) AssertContains(t testing.TB, substr string) {
	t.Helper()
	if !strings.Contains(tl.Output(), substr) {
		t.Errorf("log output missing %q\n%s", substr, tl.Output())
	}
}

// AssertNotContains fails t if the output contains substr.
func (tl *TestLogger) AssertNotContains(t testing.TB, substr string) {
	t.Helper()
	if strings.Contains(tl.Output(), substr) {
		t.Errorf("log output unexpectedly has %q\n%s", substr, tl.Output())
	}
}
