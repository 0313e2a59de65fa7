// Package report cross-references remote courses with org classes.
// Everything here is read-only; flagging a course never acts on it.
package report

import (
	"strings"

	"github.com/hxeb/hxebclass/pkg/alias"
	"github.com/hxeb/hxebclass/pkg/classroom"
)

// FindStale returns the remote courses whose trimmed name is not among the
// trimmed org class names, in input order.
func FindStale(courses []classroom.Course, orgNames []string) []classroom.Course {
	names := nameSet(orgNames)
	var stale []classroom.Course
	for _, c := range courses {
		if _, ok := names[c.TrimmedName()]; !ok {
			stale = append(stale, c)
		}
	}
	return stale
}

// Row is one remote course annotated for listing.
type Row struct {
	Course   classroom.Course `json:"course" yaml:"course"`
	Alias    string           `json:"alias,omitempty" yaml:"alias,omitempty"`
	SeasonID int              `json:"season_id,omitempty" yaml:"season_id,omitempty"`
	ClassID  int              `json:"class_id,omitempty" yaml:"class_id,omitempty"`
	Stale    bool             `json:"stale" yaml:"stale"`
}

// Annotate marks each course as stale or not against orgNames.
// orgNames of nil means the org listing was unavailable and nothing is
// flagged.
func Annotate(courses []classroom.Course, orgNames []string) []Row {
	names := nameSet(orgNames)
	rows := make([]Row, 0, len(courses))
	for _, c := range courses {
		row := Row{Course: c}
		if orgNames != nil {
			_, ok := names[c.TrimmedName()]
			row.Stale = !ok
		}
		rows = append(rows, row)
	}
	return rows
}

// WithOrigin fills in the org season and class a course was synced from
// when the alias is known.
func WithOrigin(row Row, courseAlias string) Row {
	if season, class, ok := alias.Parse(courseAlias); ok {
		row.Alias = courseAlias
		row.SeasonID = season
		row.ClassID = class
	}
	return row
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[strings.TrimSpace(n)] = struct{}{}
	}
	return set
}
