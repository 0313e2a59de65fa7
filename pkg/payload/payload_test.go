package payload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hxeb/hxebclass/pkg/alias"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/payload"
	"github.com/hxeb/hxebclass/pkg/roster"
)

func TestBuildTrimsAndOmitsEmptyDescription(t *testing.T) {
	p, meta, err := payload.Build(roster.Arrangement{
		SeasonID:   2024,
		ClassID:    101,
		SeasonName: " Fall 2024 ",
		ClassName:  " Biology ",
	})
	require.NoError(t, err)

	assert.Equal(t, alias.Encode(2024, 101), p.ID)
	assert.Equal(t, "Biology", p.Name)
	assert.Equal(t, "Fall 2024", p.Section)
	assert.Equal(t, "me", p.OwnerID)
	assert.Equal(t, classroom.StateProvisioned, p.CourseState)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.DescriptionHeading)
	assert.Equal(t, p.ID, meta.Alias)
	assert.Empty(t, meta.TeacherEmail)
}

func TestBuildDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        *string
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"trimmed", "  Intro to cells ", ptr("Intro to cells")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, err := payload.Build(roster.Arrangement{
				SeasonID:    1,
				ClassID:     2,
				ClassName:   "Art",
				Description: tt.description,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Description)
		})
	}
}

func TestBuildMeta(t *testing.T) {
	_, meta, err := payload.Build(roster.Arrangement{
		SeasonID:     7,
		ClassID:      8,
		ClassName:    "Chess",
		RoomNo:       "B12",
		TeacherEmail: " coach@example.org ",
	})
	require.NoError(t, err)
	assert.Equal(t, payload.Meta{Alias: "p:7-8", TeacherEmail: "coach@example.org", SeasonID: 7, ClassID: 8}, meta)
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name  string
		arr   roster.Arrangement
		field string
	}{
		{"missing season", roster.Arrangement{ClassID: 1, ClassName: "A"}, "season_id"},
		{"missing class", roster.Arrangement{SeasonID: 1, ClassName: "A"}, "class_id"},
		{"blank name", roster.Arrangement{SeasonID: 1, ClassID: 1, ClassName: "  "}, "class_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := payload.Build(tt.arr)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestBuilderDescriptionHeading(t *testing.T) {
	b := payload.Builder{DescriptionHeading: true}
	p, _, err := b.Build(roster.Arrangement{SeasonID: 1, ClassID: 2, ClassName: "生物", ClassNameEn: " Biology "})
	require.NoError(t, err)
	require.NotNil(t, p.DescriptionHeading)
	assert.Equal(t, "Biology", *p.DescriptionHeading)

	p, _, err = b.Build(roster.Arrangement{SeasonID: 1, ClassID: 2, ClassName: "生物"})
	require.NoError(t, err)
	assert.Nil(t, p.DescriptionHeading)
}

func TestBuildManyOrderAndErrors(t *testing.T) {
	arrs := []roster.Arrangement{
		{SeasonID: 1, ClassID: 3, ClassName: "C"},
		{SeasonID: 1, ClassID: 1, ClassName: ""},
		{SeasonID: 1, ClassID: 2, ClassName: "B"},
	}

	var aliases []string
	var failed []string
	for item, err := range payload.BuildMany(arrs) {
		if err != nil {
			failed = append(failed, item.Meta.Alias)
			continue
		}
		aliases = append(aliases, item.Payload.ID)
	}
	assert.Equal(t, []string{"p:1-3", "p:1-2"}, aliases)
	assert.Equal(t, []string{"p:1-1"}, failed)
}

func TestBuildManyIsLazyAndRestartable(t *testing.T) {
	arrs := []roster.Arrangement{
		{SeasonID: 1, ClassID: 1, ClassName: "A"},
		{SeasonID: 1, ClassID: 2, ClassName: "B"},
	}
	seq := payload.BuildMany(arrs)

	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(t, 1, count)

	count = 0
	for range seq {
		count++
	}
	assert.Equal(t, 2, count)
}

func ptr(s string) *string { return &s }
