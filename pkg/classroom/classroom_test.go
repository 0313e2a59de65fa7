package classroom_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestParseState(t *testing.T) {
	state, err := classroom.ParseState(" archived ")
	require.NoError(t, err)
	assert.Equal(t, classroom.StateArchived, state)

	_, err = classroom.ParseState("gone")
	assert.True(t, errors.IsValidationError(err))
}

func TestEmails(t *testing.T) {
	members := []classroom.Member{
		{Profile: classroom.UserProfile{EmailAddress: " Alice@Example.org "}},
		{Profile: classroom.UserProfile{}},
		{Profile: classroom.UserProfile{EmailAddress: "bob@example.org"}},
	}
	assert.Equal(t, []string{"alice@example.org", "bob@example.org"}, classroom.Emails(members))
}

func TestMemoryCourseLifecycle(t *testing.T) {
	ctx := context.Background()
	gw := classroom.NewMemory()

	_, err := gw.GetCourse(ctx, "p:12-301")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	created, err := gw.CreateCourse(ctx, classroom.CoursePayload{
		ID:          "p:12-301",
		Name:        "Biology",
		Section:     "Fall 2024",
		OwnerID:     "me",
		CourseState: classroom.StateProvisioned,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "p:12-301", created.ID)
	assert.Equal(t, classroom.StateProvisioned, created.CourseState)

	byAlias, err := gw.GetCourse(ctx, "p:12-301")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byAlias.ID)

	_, err = gw.CreateCourse(ctx, classroom.CoursePayload{ID: "p:12-301", Name: "Again"})
	assert.True(t, errors.IsAlreadyExists(err))

	patched, err := gw.PatchCourse(ctx, "p:12-301", classroom.CoursePayload{ID: "p:12-301", Name: "Biology II", Section: "Fall 2024"})
	require.NoError(t, err)
	assert.Equal(t, "Biology II", patched.Name)

	err = gw.DeleteCourse(ctx, "p:12-301")
	assert.True(t, errors.IsPreconditionFailed(err))

	_, err = gw.SetCourseState(ctx, "p:12-301", classroom.StateArchived)
	require.NoError(t, err)
	require.NoError(t, gw.DeleteCourse(ctx, "p:12-301"))

	_, err = gw.GetCourse(ctx, "p:12-301")
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryPatchClearsRoomAndDescription(t *testing.T) {
	ctx := context.Background()
	gw := classroom.NewMemory()
	gw.Seed(classroom.Course{ID: "p:1-1", Name: "Art", Room: "B12", Description: "Old"})

	patched, err := gw.PatchCourse(ctx, "p:1-1", classroom.CoursePayload{Name: "Art"})
	require.NoError(t, err)
	assert.Empty(t, patched.Room)
	assert.Empty(t, patched.Description)
}

func TestUpdateMask(t *testing.T) {
	tests := []struct {
		name    string
		payload classroom.CoursePayload
		want    []string
	}{
		{"empty optional fields", classroom.CoursePayload{Name: "Art"}, []string{"name", "section", "room", "description"}},
		{"with description", classroom.CoursePayload{Name: "Art", Description: strPtr("Cells")}, []string{"name", "section", "room", "description"}},
		{"with heading", classroom.CoursePayload{Name: "Art", DescriptionHeading: strPtr("Biology")}, []string{"name", "section", "room", "description", "descriptionHeading"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payload.UpdateMask())
		})
	}
}

func TestMemoryOwner(t *testing.T) {
	ctx := context.Background()
	gw := classroom.NewMemory()
	created, err := gw.CreateCourse(ctx, classroom.CoursePayload{ID: "p:1-1", Name: "Art", OwnerID: "me"})
	require.NoError(t, err)
	assert.Equal(t, classroom.DefaultOwnerEmail, created.OwnerID)

	err = gw.RemoveTeacher(ctx, "p:1-1", strings.ToUpper(classroom.DefaultOwnerEmail))
	require.Error(t, err)
	assert.True(t, errors.IsPreconditionFailed(err))
	assert.Equal(t, []string{classroom.DefaultOwnerEmail}, gw.Teachers("p:1-1"))
}

func TestMemoryListAliases(t *testing.T) {
	ctx := context.Background()
	gw := classroom.NewMemory()
	gw.Seed(classroom.Course{ID: "p:12-301", Name: "Biology"})
	gw.Seed(classroom.Course{ID: "42", Name: "Manual"})

	course, err := gw.GetCourse(ctx, "p:12-301")
	require.NoError(t, err)
	aliases, err := gw.ListAliases(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"p:12-301"}, aliases)

	aliases, err = gw.ListAliases(ctx, "42")
	require.NoError(t, err)
	assert.Empty(t, aliases)

	_, err = gw.ListAliases(ctx, "p:9-9")
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryRosters(t *testing.T) {
	ctx := context.Background()
	gw := classroom.NewMemory()
	created, err := gw.CreateCourse(ctx, classroom.CoursePayload{ID: "p:1-2", Name: "Math"})
	require.NoError(t, err)

	teachers, err := gw.ListTeachers(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{classroom.DefaultOwnerEmail}, classroom.Emails(teachers))

	require.NoError(t, gw.AddTeacher(ctx, "p:1-2", "T@Example.org"))
	err = gw.AddTeacher(ctx, "p:1-2", "t@example.org")
	assert.True(t, errors.IsAlreadyMember(err))

	require.NoError(t, gw.RemoveTeacher(ctx, "p:1-2", "t@example.org"))
	err = gw.RemoveTeacher(ctx, "p:1-2", "t@example.org")
	assert.True(t, errors.IsNotMember(err))

	require.NoError(t, gw.AddStudent(ctx, "p:1-2", "kid@example.org"))
	students, err := gw.ListStudents(ctx, "p:1-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"kid@example.org"}, classroom.Emails(students))
}

func TestMemoryFailAndCalls(t *testing.T) {
	ctx := context.Background()
	gw := classroom.NewMemory()
	boom := errors.New("boom")
	gw.Fail = func(method, _ string) error {
		if method == "ListCourses" {
			return boom
		}
		return nil
	}

	_, err := gw.ListCourses(ctx)
	assert.ErrorIs(t, err, boom)
	_, _ = gw.GetCourse(ctx, "p:1-1")

	assert.Equal(t, 1, gw.CallCount("ListCourses"))
	assert.Equal(t, []classroom.Call{
		{Method: "ListCourses"},
		{Method: "GetCourse", ID: "p:1-1"},
	}, gw.Calls())

	gw.ResetCalls()
	assert.Empty(t, gw.Calls())
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()
	gw := classroom.NewMemory()
	gw.Seed(classroom.Course{ID: "p:3-4", Name: "Chess"}, "coach@example.org")

	details, err := classroom.Describe(ctx, gw, "p:3-4")
	require.NoError(t, err)
	assert.Equal(t, "Chess", details.Course.Name)
	assert.Equal(t, []string{"coach@example.org"}, classroom.Emails(details.Teachers))
	assert.Empty(t, details.Students)

	_, err = classroom.Describe(ctx, gw, "p:9-9")
	assert.True(t, errors.IsNotFound(err))
}

func TestMemoryListCoursesSorted(t *testing.T) {
	gw := classroom.NewMemory()
	gw.Seed(classroom.Course{ID: "p:1-2", Name: "B"})
	gw.Seed(classroom.Course{ID: "p:1-1", Name: "A"})

	courses, err := gw.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "B", courses[0].Name)
	assert.Equal(t, "A", courses[1].Name)
}
