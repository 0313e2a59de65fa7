package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	a := Arrangement{ClassName: "  Biology \t"}
	assert.Equal(t, "Biology", a.DisplayName())
}

func TestClassNames(t *testing.T) {
	names := ClassNames([]Arrangement{
		{ClassName: " Chinese 1 "},
		{ClassName: "Math"},
	})
	assert.Equal(t, []string{"Chinese 1", "Math"}, names)
	assert.Empty(t, ClassNames(nil))
}

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := &Memory{
		Classes: []Arrangement{
			{SeasonID: 12, ClassID: 301},
			{SeasonID: 12, ClassID: 302},
			{SeasonID: 11, ClassID: 301},
		},
		Students: []Registration{
			{SeasonID: 12, StudentID: 1},
			{SeasonID: 11, StudentID: 2},
		},
	}

	all, err := m.Arrangements(ctx, Query{SeasonID: 12})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := m.Arrangements(ctx, Query{SeasonID: 12, ClassID: 302})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, 302, one[0].ClassID)

	regs, err := m.Registrations(ctx, 11)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, 2, regs[0].StudentID)

	m.Err = errors.New("connection reset")
	_, err = m.Arrangements(ctx, Query{SeasonID: 12})
	assert.EqualError(t, err, "connection reset")
}
