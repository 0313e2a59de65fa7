// Package payload turns org class arrangements into remote course payloads.
package payload

import (
	"iter"
	"strings"

	"github.com/hxeb/hxebclass/pkg/alias"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/roster"
)

// Meta travels beside a payload through one sync pass. It is never sent
// to the remote service.
type Meta struct {
	Alias        string
	TeacherEmail string
	SeasonID     int
	ClassID      int
}

// Item is one built payload with its side-channel metadata.
type Item struct {
	Payload classroom.CoursePayload
	Meta    Meta
}

// Builder builds course payloads. The zero value is ready to use.
type Builder struct {
	// DescriptionHeading sends the English class name as the course
	// description heading when it is set.
	DescriptionHeading bool
}

// Build builds the payload for a single arrangement.
func Build(arr roster.Arrangement) (classroom.CoursePayload, Meta, error) {
	return Builder{}.Build(arr)
}

// BuildMany lazily builds payloads for arrangements in input order.
func BuildMany(arrs []roster.Arrangement) iter.Seq2[Item, error] {
	return Builder{}.BuildMany(arrs)
}

// Build builds the payload for a single arrangement.
func (b Builder) Build(arr roster.Arrangement) (classroom.CoursePayload, Meta, error) {
	if arr.SeasonID == 0 {
		return classroom.CoursePayload{}, Meta{}, errors.NewValidationError("season_id", arr.SeasonID, "is required")
	}
	if arr.ClassID == 0 {
		return classroom.CoursePayload{}, Meta{}, errors.NewValidationError("class_id", arr.ClassID, "is required")
	}
	name := arr.DisplayName()
	if name == "" {
		return classroom.CoursePayload{}, Meta{}, errors.NewValidationError("class_name", arr.ClassName, "must not be empty")
	}

	key := alias.Encode(arr.SeasonID, arr.ClassID)
	p := classroom.CoursePayload{
		ID:          key,
		Name:        name,
		Section:     strings.TrimSpace(arr.SeasonName),
		Room:        strings.TrimSpace(arr.RoomNo),
		OwnerID:     constants.OwnerMe,
		CourseState: classroom.StateProvisioned,
	}
	if d := strings.TrimSpace(arr.Description); d != "" {
		p.Description = &d
	}
	if b.DescriptionHeading {
		if h := strings.TrimSpace(arr.ClassNameEn); h != "" {
			p.DescriptionHeading = &h
		}
	}

	meta := Meta{
		Alias:        key,
		TeacherEmail: strings.TrimSpace(arr.TeacherEmail),
		SeasonID:     arr.SeasonID,
		ClassID:      arr.ClassID,
	}
	return p, meta, nil
}

// BuildMany lazily builds payloads for arrangements in input order. A
// failed arrangement yields its error and iteration continues with the
// next one. Each call to the returned sequence starts over.
func (b Builder) BuildMany(arrs []roster.Arrangement) iter.Seq2[Item, error] {
	return func(yield func(Item, error) bool) {
		for _, arr := range arrs {
			p, meta, err := b.Build(arr)
			if err != nil {
				meta = Meta{
					Alias:    aliasOrEmpty(arr),
					SeasonID: arr.SeasonID,
					ClassID:  arr.ClassID,
				}
			}
			if !yield(Item{Payload: p, Meta: meta}, err) {
				return
			}
		}
	}
}

func aliasOrEmpty(arr roster.Arrangement) string {
	if arr.SeasonID == 0 || arr.ClassID == 0 {
		return ""
	}
	return alias.Encode(arr.SeasonID, arr.ClassID)
}
