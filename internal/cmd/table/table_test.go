package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/report"
	"github.com/hxeb/hxebclass/pkg/roster"
	"github.com/hxeb/hxebclass/pkg/sync"
)

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "Active", StateLabel(classroom.StateActive))
	assert.Equal(t, "Provisioned", StateLabel(classroom.StateProvisioned))
	assert.Equal(t, "-", StateLabel(""))
}

func TestCoursesToTableData(t *testing.T) {
	rows := []report.Row{
		{Course: classroom.Course{ID: "1", Name: "Biology", Section: "Fall 2024", CourseState: classroom.StateActive}, Alias: "p:12-301"},
		{Course: classroom.Course{ID: "2", Name: "Old Art", Room: "B2"}, Stale: true},
	}

	data := CoursesToTableData(rows, false)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"ID", "Name", "Section", "Room", "State", "Stale"}, data.Headers)
	assert.Equal(t, "", data.Rows[0][5])
	assert.Equal(t, "-", data.Rows[0][3])
	assert.Contains(t, data.Rows[1][5], "stale")

	wide := CoursesToTableData(rows, true)
	assert.Len(t, wide.Headers, 10)
	assert.Len(t, wide.Rows[0], 10)
	assert.Equal(t, "p:12-301", wide.Rows[0][6])
	assert.Equal(t, "-", wide.Rows[1][6])
}

func TestArrangementsToTableData(t *testing.T) {
	fee := 120.0
	arrs := []roster.Arrangement{{
		SeasonID:   12,
		ClassID:    301,
		ClassName:  " Biology ",
		SeasonName: "Fall 2024",
		Fees:       roster.Fees{TuitionW: &fee},
	}}

	data := ArrangementsToTableData(arrs, true)
	require.Len(t, data.Rows, 1)
	row := data.Rows[0]
	assert.Equal(t, "p:12-301", row[0])
	assert.Equal(t, "Biology", row[2])
	assert.Equal(t, "-", row[6])
	assert.Equal(t, "$120.00", row[8])
	assert.Equal(t, "-", row[9])
}

func TestDetailsToTableData(t *testing.T) {
	d := &classroom.Details{
		Course: classroom.Course{ID: "100001", Name: "Biology"},
		Teachers: []classroom.Member{
			{Profile: classroom.UserProfile{EmailAddress: "t@x.org"}},
		},
	}

	data := DetailsToTableData(d, 12, 301)
	props := map[string]string{}
	for _, row := range data.Rows {
		props[row[0]] = row[1]
	}
	assert.Equal(t, "p:12-301", props["Alias"])
	assert.Equal(t, "t@x.org", props["Teachers"])
	assert.Equal(t, "0", props["Students"])

	unknown := DetailsToTableData(d, 0, 0)
	for _, row := range unknown.Rows {
		assert.NotEqual(t, "Alias", row[0])
	}
}

func TestTeacherSummary(t *testing.T) {
	tests := []struct {
		name string
		in   sync.TeacherResult
		want string
	}{
		{"not requested", sync.TeacherResult{}, "-"},
		{"in sync", sync.TeacherResult{Status: sync.TeachersSynced}, "✓ in sync"},
		{"changes", sync.TeacherResult{Status: sync.TeachersSynced, Added: []string{"a@x"}, Removed: []string{"b@x"}}, "✓ +a@x -b@x"},
		{"planned", sync.TeacherResult{Status: sync.TeachersPlanned, Added: []string{"a@x"}}, "~ +a@x"},
		{"skipped", sync.TeacherResult{Status: sync.TeachersSkipped, Note: "no teacher email"}, "skipped: no teacher email"},
		{"failed", sync.TeacherResult{Status: sync.TeachersFailed}, "✗ failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeacherSummary(tt.in))
		})
	}
}

func TestSyncResultToTableData(t *testing.T) {
	res := &sync.Result{Items: []sync.ItemResult{
		{Alias: "p:1-2", Name: "Biology", CourseID: "100001", Action: sync.ActionCreated},
		{Alias: "p:1-3", Action: sync.ActionFailed, Stage: sync.StageLookup, Error: "boom"},
	}}

	data := SyncResultToTableData(res, true)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "✓ created", data.Rows[0][3])
	assert.Equal(t, "✗ failed", data.Rows[1][3])
	assert.Equal(t, "boom", data.Rows[1][5])
	assert.Equal(t, "lookup", data.Rows[1][6])
}
