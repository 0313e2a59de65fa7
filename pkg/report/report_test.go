package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/report"
)

func courses(names ...string) []classroom.Course {
	out := make([]classroom.Course, 0, len(names))
	for i, n := range names {
		out = append(out, classroom.Course{ID: string(rune('1' + i)), Name: n})
	}
	return out
}

func TestFindStale(t *testing.T) {
	remote := courses("A", "B", "C")
	stale := report.FindStale(remote, []string{"B", "C"})
	assert.Equal(t, []classroom.Course{remote[0]}, stale)
}

func TestFindStaleTrimsBothSides(t *testing.T) {
	remote := courses(" Biology ", "Chess")
	stale := report.FindStale(remote, []string{"Biology  ", " Chess"})
	assert.Empty(t, stale)
}

func TestFindStaleDoesNotMutateInput(t *testing.T) {
	remote := courses("A", "B")
	before := append([]classroom.Course(nil), remote...)
	_ = report.FindStale(remote, nil)
	assert.Equal(t, before, remote)
}

func TestFindStaleEmptyOrg(t *testing.T) {
	remote := courses("A", "B")
	assert.Equal(t, remote, report.FindStale(remote, []string{}))
}

func TestAnnotate(t *testing.T) {
	rows := report.Annotate(courses("A", "B"), []string{"B"})
	assert.True(t, rows[0].Stale)
	assert.False(t, rows[1].Stale)

	rows = report.Annotate(courses("A"), nil)
	assert.False(t, rows[0].Stale)
}

func TestWithOrigin(t *testing.T) {
	row := report.WithOrigin(report.Row{}, "p:2024-101")
	assert.Equal(t, 2024, row.SeasonID)
	assert.Equal(t, 101, row.ClassID)
	assert.Equal(t, "p:2024-101", row.Alias)

	row = report.WithOrigin(report.Row{}, "12345")
	assert.Zero(t, row.ClassID)
	assert.Empty(t, row.Alias)
}
