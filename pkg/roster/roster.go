// Package roster defines the org system records hxebclass reads: class
// arrangements for a season and the student registrations against them.
// The org database owns these records; this package only describes them.
package roster

import (
	"context"
	"strings"
)

// Fees holds the fee schedule attached to an arrangement. It is carried for
// listings only and never sent to the remote service.
type Fees struct {
	TuitionW    *float64 `json:"tuition_w,omitempty" yaml:"tuition_w,omitempty"`
	TuitionWJ   *float64 `json:"tuition_w_j,omitempty" yaml:"tuition_w_j,omitempty"`
	BookFeeW    *float64 `json:"book_fee_w,omitempty" yaml:"book_fee_w,omitempty"`
	BookFeeWJ   *float64 `json:"book_fee_w_j,omitempty" yaml:"book_fee_w_j,omitempty"`
	SpecialFeeW *float64 `json:"special_fee_w,omitempty" yaml:"special_fee_w,omitempty"`
	TuitionH    *float64 `json:"tuition_h,omitempty" yaml:"tuition_h,omitempty"`
	TuitionHJ   *float64 `json:"tuition_h_j,omitempty" yaml:"tuition_h_j,omitempty"`
	BookFeeH    *float64 `json:"book_fee_h,omitempty" yaml:"book_fee_h,omitempty"`
	BookFeeHJ   *float64 `json:"book_fee_h_j,omitempty" yaml:"book_fee_h_j,omitempty"`
	SpecialFeeH *float64 `json:"special_fee_h,omitempty" yaml:"special_fee_h,omitempty"`
}

// Arrangement links a class offering to a season, room and teacher.
// Optional text fields are empty when the org database holds NULL.
type Arrangement struct {
	ArrangeID    int    `json:"arrange_id" yaml:"arrange_id"`
	ClassID      int    `json:"class_id" yaml:"class_id"`
	SeasonID     int    `json:"season_id" yaml:"season_id"`
	SeasonName   string `json:"season_name" yaml:"season_name"`
	ClassName    string `json:"class_name" yaml:"class_name"`
	ClassNameEn  string `json:"class_name_en,omitempty" yaml:"class_name_en,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	RoomNo       string `json:"room_no,omitempty" yaml:"room_no,omitempty"`
	TypeID       int    `json:"type_id,omitempty" yaml:"type_id,omitempty"`
	TypeName     string `json:"type_name,omitempty" yaml:"type_name,omitempty"`
	TeacherEmail string `json:"teacher_email,omitempty" yaml:"teacher_email,omitempty"`
	Fees         Fees   `json:"fees" yaml:"fees"`
}

// DisplayName returns the trimmed class name used as the remote course name.
func (a Arrangement) DisplayName() string {
	return strings.TrimSpace(a.ClassName)
}

// Registration is one student enrolled in an arrangement.
type Registration struct {
	ArrangeID     int    `json:"arrange_id" yaml:"arrange_id"`
	ClassID       int    `json:"class_id" yaml:"class_id"`
	SeasonID      int    `json:"season_id" yaml:"season_id"`
	ClassName     string `json:"class_name" yaml:"class_name"`
	StudentID     int    `json:"student_id" yaml:"student_id"`
	StudentNameCn string `json:"student_name_cn,omitempty" yaml:"student_name_cn,omitempty"`
	FirstName     string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	FamilyEmail   string `json:"family_email,omitempty" yaml:"family_email,omitempty"`
}

// Query selects active arrangements. A zero ClassID selects every class
// in the season.
type Query struct {
	SeasonID int
	ClassID  int
}

// Source is the read-only org data source.
type Source interface {
	// Arrangements returns active arrangements matching q in org order.
	Arrangements(ctx context.Context, q Query) ([]Arrangement, error)

	// Registrations returns student registrations for active arrangements in a season.
	Registrations(ctx context.Context, seasonID int) ([]Registration, error)
}

// ClassNames returns the trimmed display names of arrangements, in order.
func ClassNames(arrangements []Arrangement) []string {
	names := make([]string, 0, len(arrangements))
	for _, a := range arrangements {
		names = append(names, a.DisplayName())
	}
	return names
}
