// Package classroom describes the remote classroom service as hxebclass
// sees it: course and roster types, the Gateway capability set the sync
// engine consumes, and an in-memory Gateway used by tests.
package classroom

import (
	"fmt"
	"strings"

	"github.com/hxeb/hxebclass/pkg/errors"
)

// CourseState is the lifecycle state of a remote course.
type CourseState string

// Course lifecycle states.
const (
	StateUnspecified CourseState = "COURSE_STATE_UNSPECIFIED"
	StateProvisioned CourseState = "PROVISIONED"
	StateActive      CourseState = "ACTIVE"
	StateArchived    CourseState = "ARCHIVED"
	StateDeclined    CourseState = "DECLINED"
	StateSuspended   CourseState = "SUSPENDED"
)

// String returns the wire form of the state.
func (s CourseState) String() string {
	return string(s)
}

// ParseState parses a state name case-insensitively.
func ParseState(s string) (CourseState, error) {
	state := CourseState(strings.ToUpper(strings.TrimSpace(s)))
	switch state {
	case StateProvisioned, StateActive, StateArchived, StateDeclined:
		return state, nil
	default:
		return "", errors.NewValidationError("state", s,
			fmt.Sprintf("must be one of %s, %s, %s, %s", StateProvisioned, StateActive, StateArchived, StateDeclined))
	}
}

// CoursePayload is the normalized course representation sent on create
// and patch. ID carries the alias on create.
type CoursePayload struct {
	ID                 string      `json:"id,omitempty" yaml:"id"`
	Name               string      `json:"name" yaml:"name"`
	Section            string      `json:"section,omitempty" yaml:"section,omitempty"`
	Room               string      `json:"room,omitempty" yaml:"room,omitempty"`
	OwnerID            string      `json:"ownerId,omitempty" yaml:"owner_id,omitempty"`
	CourseState        CourseState `json:"courseState,omitempty" yaml:"course_state,omitempty"`
	Description        *string     `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionHeading *string     `json:"descriptionHeading,omitempty" yaml:"description_heading,omitempty"`
}

// Alias returns the alias carried by the payload.
func (p CoursePayload) Alias() string {
	return p.ID
}

// UpdateMask lists the fields a patch with p changes. Room and description
// are always included, so a value cleared in the org clears the course.
// Lifecycle state is never part of it; use Gateway.SetCourseState.
func (p CoursePayload) UpdateMask() []string {
	mask := []string{"name", "section", "room", "description"}
	if p.DescriptionHeading != nil {
		mask = append(mask, "descriptionHeading")
	}
	return mask
}

// Course is a course as stored by the remote service.
type Course struct {
	ID                 string      `json:"id" yaml:"id"`
	Name               string      `json:"name" yaml:"name"`
	Section            string      `json:"section,omitempty" yaml:"section,omitempty"`
	Room               string      `json:"room,omitempty" yaml:"room,omitempty"`
	Description        string      `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionHeading string      `json:"descriptionHeading,omitempty" yaml:"description_heading,omitempty"`
	OwnerID            string      `json:"ownerId,omitempty" yaml:"owner_id,omitempty"`
	CourseState        CourseState `json:"courseState,omitempty" yaml:"course_state,omitempty"`
	EnrollmentCode     string      `json:"enrollmentCode,omitempty" yaml:"enrollment_code,omitempty"`
	AlternateLink      string      `json:"alternateLink,omitempty" yaml:"alternate_link,omitempty"`
	CreationTime       string      `json:"creationTime,omitempty" yaml:"creation_time,omitempty"`
	UpdateTime         string      `json:"updateTime,omitempty" yaml:"update_time,omitempty"`
}

// TrimmedName returns the course name without surrounding whitespace.
func (c Course) TrimmedName() string {
	return strings.TrimSpace(c.Name)
}

// Name is a user's display name.
type Name struct {
	GivenName  string `json:"givenName,omitempty" yaml:"given_name,omitempty"`
	FamilyName string `json:"familyName,omitempty" yaml:"family_name,omitempty"`
	FullName   string `json:"fullName,omitempty" yaml:"full_name,omitempty"`
}

// UserProfile is the public profile of a course member.
type UserProfile struct {
	ID           string `json:"id,omitempty" yaml:"id,omitempty"`
	Name         Name   `json:"name" yaml:"name"`
	EmailAddress string `json:"emailAddress,omitempty" yaml:"email_address,omitempty"`
}

// Member is a teacher or student of a course.
type Member struct {
	CourseID string      `json:"courseId,omitempty" yaml:"course_id,omitempty"`
	UserID   string      `json:"userId,omitempty" yaml:"user_id,omitempty"`
	Profile  UserProfile `json:"profile" yaml:"profile"`
}

// Email returns the member's normalized email address.
func (m Member) Email() string {
	return NormalizeEmail(m.Profile.EmailAddress)
}

// Emails returns the normalized, non-empty email addresses of members.
func Emails(members []Member) []string {
	emails := make([]string, 0, len(members))
	for _, m := range members {
		if e := m.Email(); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Details is a course together with its rosters.
type Details struct {
	Course   Course   `json:"course" yaml:"course"`
	Teachers []Member `json:"teachers" yaml:"teachers"`
	Students []Member `json:"students" yaml:"students"`
}
