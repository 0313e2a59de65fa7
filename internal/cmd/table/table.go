// Package table converts hxebclass records into rows for table output.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hxeb/hxebclass/internal/cmd/emoji"
	"github.com/hxeb/hxebclass/pkg/alias"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/report"
	"github.com/hxeb/hxebclass/pkg/roster"
	"github.com/hxeb/hxebclass/pkg/sync"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data is a rendered table.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// StateLabel returns a title-cased course state, "Active" for ACTIVE.
func StateLabel(state classroom.CourseState) string {
	if state == "" {
		return emoji.Optional
	}
	return cases.Title(language.English).String(strings.ToLower(string(state)))
}

// CoursesToTableData converts annotated remote courses to table format.
func CoursesToTableData(rows []report.Row, wide bool) Data {
	headers := []string{"ID", "Name", "Section", "Room", "State", "Stale"}
	if wide {
		headers = append(headers, "Alias", "Owner", "Enrollment Code", "Updated")
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		stale := ""
		if r.Stale {
			stale = emoji.Warning + " stale"
		}
		row := []string{
			r.Course.ID,
			r.Course.Name,
			r.Course.Section,
			orDash(r.Course.Room),
			StateLabel(r.Course.CourseState),
			stale,
		}
		if wide {
			row = append(row,
				orDash(r.Alias),
				orDash(r.Course.OwnerID),
				orDash(r.Course.EnrollmentCode),
				formatTimestamp(r.Course.UpdateTime),
			)
		}
		out = append(out, row)
	}
	return Data{Headers: headers, Rows: out}
}

// DetailsToTableData converts a described course to a property table.
// Zero seasonID and classID mean the course origin is unknown.
func DetailsToTableData(d *classroom.Details, seasonID, classID int) Data {
	c := d.Course
	rows := [][]string{
		{"ID", c.ID},
		{"Name", c.Name},
		{"Section", orDash(c.Section)},
		{"Room", orDash(c.Room)},
		{"State", StateLabel(c.CourseState)},
		{"Owner", orDash(c.OwnerID)},
		{"Description", orDash(c.Description)},
	}
	if c.DescriptionHeading != "" {
		rows = append(rows, []string{"Heading", c.DescriptionHeading})
	}
	if seasonID > 0 && classID > 0 {
		rows = append(rows,
			[]string{"Alias", alias.Encode(seasonID, classID)},
			[]string{"Org Class", fmt.Sprintf("season %d, class %d", seasonID, classID)},
		)
	}
	rows = append(rows,
		[]string{"Enrollment Code", orDash(c.EnrollmentCode)},
		[]string{"Link", orDash(c.AlternateLink)},
		[]string{"Teachers", joinOrDash(classroom.Emails(d.Teachers))},
		[]string{"Students", strconv.Itoa(len(d.Students))},
	)
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// ArrangementsToTableData converts org arrangements to table format.
func ArrangementsToTableData(arrs []roster.Arrangement, wide bool) Data {
	headers := []string{"Alias", "Class ID", "Class", "English", "Season", "Room", "Teacher"}
	align := []Align{AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Type", "Tuition W", "Tuition H", "Book Fee W", "Book Fee H")
	}

	rows := make([][]string, 0, len(arrs))
	for _, a := range arrs {
		row := []string{
			alias.Encode(a.SeasonID, a.ClassID),
			strconv.Itoa(a.ClassID),
			a.DisplayName(),
			orDash(strings.TrimSpace(a.ClassNameEn)),
			strings.TrimSpace(a.SeasonName),
			orDash(strings.TrimSpace(a.RoomNo)),
			orDash(a.TeacherEmail),
		}
		if wide {
			row = append(row,
				orDash(a.TypeName),
				FormatFee(a.Fees.TuitionW),
				FormatFee(a.Fees.TuitionH),
				FormatFee(a.Fees.BookFeeW),
				FormatFee(a.Fees.BookFeeH),
			)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// RegistrationsToTableData converts student registrations to table format.
func RegistrationsToTableData(regs []roster.Registration) Data {
	headers := []string{"Class ID", "Class", "Student ID", "Chinese Name", "First Name", "Last Name", "Family Email"}
	rows := make([][]string, 0, len(regs))
	for _, r := range regs {
		rows = append(rows, []string{
			strconv.Itoa(r.ClassID),
			strings.TrimSpace(r.ClassName),
			strconv.Itoa(r.StudentID),
			orDash(r.StudentNameCn),
			orDash(r.FirstName),
			orDash(r.LastName),
			orDash(r.FamilyEmail),
		})
	}
	return Data{
		Headers:         headers,
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignRight},
	}
}

// SyncResultToTableData converts a sync run to one row per course.
func SyncResultToTableData(res *sync.Result, wide bool) Data {
	headers := []string{"Alias", "Name", "Course ID", "Action", "Teachers", "Error"}
	if wide {
		headers = append(headers, "Stage", "Kept", "Conflicts", "Students")
	}

	rows := make([][]string, 0, len(res.Items))
	for _, item := range res.Items {
		row := []string{
			orDash(item.Alias),
			orDash(item.Name),
			orDash(item.CourseID),
			actionLabel(item.Action),
			TeacherSummary(item.Teachers),
			item.Error,
		}
		if wide {
			row = append(row,
				orDash(item.Stage),
				joinOrDash(item.Teachers.Kept),
				joinOrDash(item.Teachers.Conflicts),
				orDash(item.Students),
			)
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// TeacherSummary renders a teacher reconciliation outcome in one cell.
func TeacherSummary(t sync.TeacherResult) string {
	var changes []string
	for _, email := range t.Added {
		changes = append(changes, "+"+email)
	}
	for _, email := range t.Removed {
		changes = append(changes, "-"+email)
	}

	switch t.Status {
	case sync.TeachersNotRequested:
		return emoji.Optional
	case sync.TeachersSkipped:
		return "skipped: " + t.Note
	case sync.TeachersFailed:
		return emoji.Error + " failed"
	case sync.TeachersPlanned:
		if len(changes) == 0 {
			return emoji.Planned + " no changes"
		}
		return emoji.Planned + " " + strings.Join(changes, " ")
	default:
		if len(changes) == 0 {
			return emoji.Success + " in sync"
		}
		return emoji.Success + " " + strings.Join(changes, " ")
	}
}

// FormatFee formats an optional fee amount.
func FormatFee(fee *float64) string {
	if fee == nil {
		return emoji.Optional
	}
	return fmt.Sprintf("$%.2f", *fee)
}

func actionLabel(a sync.Action) string {
	switch {
	case a == sync.ActionFailed:
		return emoji.Error + " " + string(a)
	case a.Planned():
		return emoji.Planned + " " + string(a)
	default:
		return emoji.Success + " " + string(a)
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return orDash(ts)
	}
	return t.Local().Format("2006-01-02 15:04")
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return emoji.Optional
	}
	return strings.Join(values, ", ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return emoji.Optional
	}
	return s
}
