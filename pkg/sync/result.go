package sync

import (
	"fmt"
	"strings"
	"time"
)

// Action is the outcome of the course step for one item.
type Action string

// Course step outcomes.
const (
	ActionCreated     Action = "created"
	ActionUpdated     Action = "updated"
	ActionWouldCreate Action = "would_create"
	ActionWouldUpdate Action = "would_update"
	ActionFailed      Action = "failed"
)

// Planned reports whether the action was only planned by a dry run.
func (a Action) Planned() bool {
	return a == ActionWouldCreate || a == ActionWouldUpdate
}

// Stage names where an item failed.
const (
	StageBuild    = "build"
	StageLookup   = "lookup"
	StageCreate   = "create"
	StagePatch    = "patch"
	StageTeachers = "teachers"
)

// TeacherStatus is the outcome of teacher reconciliation for one item.
type TeacherStatus string

// Teacher reconciliation outcomes.
const (
	TeachersNotRequested TeacherStatus = ""
	TeachersSynced       TeacherStatus = "synced"
	TeachersPlanned      TeacherStatus = "planned"
	TeachersSkipped      TeacherStatus = "skipped"
	TeachersFailed       TeacherStatus = "failed"
)

// TeacherResult describes teacher reconciliation for one course.
type TeacherResult struct {
	Status    TeacherStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Desired   string        `json:"desired,omitempty" yaml:"desired,omitempty"`
	Added     []string      `json:"added,omitempty" yaml:"added,omitempty"`
	Removed   []string      `json:"removed,omitempty" yaml:"removed,omitempty"`
	Kept      []string      `json:"kept,omitempty" yaml:"kept,omitempty"` // protected by the whitelist
	Conflicts []string      `json:"conflicts,omitempty" yaml:"conflicts,omitempty"`
	Note      string        `json:"note,omitempty" yaml:"note,omitempty"`
}

// ItemResult is the outcome of syncing one arrangement.
type ItemResult struct {
	Alias    string        `json:"alias" yaml:"alias"`
	SeasonID int           `json:"season_id" yaml:"season_id"`
	ClassID  int           `json:"class_id" yaml:"class_id"`
	Name     string        `json:"name" yaml:"name"`
	CourseID string        `json:"course_id,omitempty" yaml:"course_id,omitempty"`
	Action   Action        `json:"action" yaml:"action"`
	Teachers TeacherResult `json:"teachers" yaml:"teachers"`
	Students string        `json:"students,omitempty" yaml:"students,omitempty"`
	Stage    string        `json:"stage,omitempty" yaml:"stage,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`

	Err error `json:"-" yaml:"-"`
}

// Failed reports whether any step of the item failed.
func (r *ItemResult) Failed() bool {
	return r.Err != nil
}

func (r *ItemResult) fail(stage string, err error) {
	r.Stage = stage
	r.Err = err
	r.Error = err.Error()
}

// Result is the outcome of a sync run.
type Result struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	DryRun     bool         `json:"dry_run" yaml:"dry_run"`
	Canceled   bool         `json:"canceled,omitempty" yaml:"canceled,omitempty"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	Items      []ItemResult `json:"items" yaml:"items"`
}

// Counts tallies item outcomes.
type Counts struct {
	Created  int
	Updated  int
	Planned  int
	Failed   int
	Teachers int // teacher additions and removals, applied or planned
}

// Counts returns the tallies for the run.
func (r *Result) Counts() Counts {
	var c Counts
	for i := range r.Items {
		item := &r.Items[i]
		switch {
		case item.Action == ActionCreated:
			c.Created++
		case item.Action == ActionUpdated:
			c.Updated++
		case item.Action.Planned():
			c.Planned++
		}
		if item.Failed() {
			c.Failed++
		}
		c.Teachers += len(item.Teachers.Added) + len(item.Teachers.Removed)
	}
	return c
}

// HasFailures reports whether any item failed.
func (r *Result) HasFailures() bool {
	return r.Counts().Failed > 0
}

// Failures returns the failed items.
func (r *Result) Failures() []ItemResult {
	var out []ItemResult
	for _, item := range r.Items {
		if item.Failed() {
			out = append(out, item)
		}
	}
	return out
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	if len(r.Items) == 0 {
		return "No courses to sync"
	}

	c := r.Counts()
	var summary string
	if r.DryRun {
		summary = fmt.Sprintf("%d courses: %d planned, %d failed, %d teacher changes planned",
			len(r.Items), c.Planned, c.Failed, c.Teachers)
	} else {
		summary = fmt.Sprintf("%d courses: %d created, %d updated, %d failed, %d teacher changes",
			len(r.Items), c.Created, c.Updated, c.Failed, c.Teachers)
	}

	var parts []string
	if r.DryRun {
		parts = append(parts, "(Dry run)")
	}
	if r.Canceled {
		parts = append(parts, "(Canceled)")
	}
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}

// Duration returns how long the run took.
func (r *Result) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
