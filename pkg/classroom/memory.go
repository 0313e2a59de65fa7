package classroom

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/hxeb/hxebclass/pkg/errors"
)

// DefaultOwnerEmail is the account that owns courses created through a Memory gateway.
const DefaultOwnerEmail = "owner@example.org"

// Call records one Gateway method invocation on a Memory gateway.
type Call struct {
	Method string
	ID     string
	Email  string
}

// Memory is a goroutine-safe in-memory Gateway. It mirrors the remote
// service's observable behavior: aliases resolve to generated IDs, the
// owner is enrolled as a teacher on create, only archived courses can be
// deleted, the owner cannot be removed from the teachers, and roster
// conflicts surface as membership errors. Member user IDs are their
// email addresses.
type Memory struct {
	// OwnerEmail owns every created course and is enrolled as its teacher.
	OwnerEmail string
	// Fail, when set, is consulted before each call; a non-nil result is
	// returned without touching state.
	Fail func(method, id string) error

	mu       sync.RWMutex
	nextID   int
	courses  map[string]*Course
	aliases  map[string]string
	teachers map[string][]string
	students map[string][]string
	calls    []Call
}

var _ Gateway = (*Memory)(nil)

// NewMemory returns an empty Memory gateway.
func NewMemory() *Memory {
	return &Memory{
		OwnerEmail: DefaultOwnerEmail,
		nextID:     100000,
		courses:    make(map[string]*Course),
		aliases:    make(map[string]string),
		teachers:   make(map[string][]string),
		students:   make(map[string][]string),
	}
}

// Calls returns a copy of the recorded calls in order.
func (m *Memory) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.calls)
}

// CallCount returns how many times method was invoked.
func (m *Memory) CallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// ResetCalls clears the call log.
func (m *Memory) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Seed stores a course directly, registering id as an alias when it is
// not numeric. Teachers are enrolled as given.
func (m *Memory) Seed(course Course, teachers ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := course.ID
	if _, err := strconv.Atoi(id); err != nil {
		alias := id
		id = m.newID()
		m.aliases[alias] = id
	}
	course.ID = id
	if course.CourseState == "" {
		course.CourseState = StateActive
	}
	c := course
	m.courses[id] = &c
	for _, t := range teachers {
		m.teachers[id] = append(m.teachers[id], NormalizeEmail(t))
	}
}

// Teachers returns the teacher emails of a course without recording a call.
func (m *Memory) Teachers(id string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.teachers[m.resolve(id)])
}

// ListCourses implements Gateway.
func (m *Memory) ListCourses(_ context.Context) ([]Course, error) {
	if err := m.record("ListCourses", "", ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	courses := make([]Course, 0, len(m.courses))
	for _, c := range m.courses {
		courses = append(courses, *c)
	}
	slices.SortFunc(courses, func(a, b Course) int {
		return compareIDs(a.ID, b.ID)
	})
	return courses, nil
}

// GetCourse implements Gateway.
func (m *Memory) GetCourse(_ context.Context, id string) (*Course, error) {
	if err := m.record("GetCourse", id, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

// CreateCourse implements Gateway.
func (m *Memory) CreateCourse(_ context.Context, payload CoursePayload) (*Course, error) {
	if err := m.record("CreateCourse", payload.ID, ""); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if payload.ID != "" {
		if _, ok := m.aliases[payload.ID]; ok {
			return nil, &errors.APIError{
				Service:    "classroom",
				StatusCode: 409,
				Status:     "ALREADY_EXISTS",
				Message:    "Requested entity already exists",
			}
		}
	}
	id := m.newID()
	now := time.Now().UTC().Format(time.RFC3339)
	c := &Course{ID: id, CreationTime: now}
	applyPayload(c, payload, nil)
	c.OwnerID = NormalizeEmail(m.OwnerEmail)
	c.CourseState = payload.CourseState
	if c.CourseState == "" {
		c.CourseState = StateProvisioned
	}
	c.UpdateTime = now
	m.courses[id] = c
	if payload.ID != "" {
		m.aliases[payload.ID] = id
	}
	if m.OwnerEmail != "" {
		m.teachers[id] = []string{NormalizeEmail(m.OwnerEmail)}
	}
	out := *c
	return &out, nil
}

// PatchCourse implements Gateway.
func (m *Memory) PatchCourse(_ context.Context, id string, payload CoursePayload) (*Course, error) {
	if err := m.record("PatchCourse", id, ""); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	applyPayload(c, payload, payload.UpdateMask())
	c.UpdateTime = time.Now().UTC().Format(time.RFC3339)
	out := *c
	return &out, nil
}

// SetCourseState implements Gateway.
func (m *Memory) SetCourseState(_ context.Context, id string, state CourseState) (*Course, error) {
	if err := m.record("SetCourseState", id, ""); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	c.CourseState = state
	out := *c
	return &out, nil
}

// DeleteCourse implements Gateway.
func (m *Memory) DeleteCourse(_ context.Context, id string) error {
	if err := m.record("DeleteCourse", id, ""); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.lookup(id)
	if err != nil {
		return err
	}
	if c.CourseState != StateArchived {
		return &errors.PreconditionError{
			Operation: "delete",
			Resource:  "course",
			ID:        id,
			Message:   "course must be archived before it can be deleted",
		}
	}
	delete(m.courses, c.ID)
	delete(m.teachers, c.ID)
	delete(m.students, c.ID)
	for alias, target := range m.aliases {
		if target == c.ID {
			delete(m.aliases, alias)
		}
	}
	return nil
}

// ListAliases implements Gateway.
func (m *Memory) ListAliases(_ context.Context, courseID string) ([]string, error) {
	if err := m.record("ListAliases", courseID, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, err := m.lookup(courseID)
	if err != nil {
		return nil, err
	}
	var out []string
	for alias, target := range m.aliases {
		if target == c.ID {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out, nil
}

// ListTeachers implements Gateway.
func (m *Memory) ListTeachers(_ context.Context, courseID string) ([]Member, error) {
	return m.listMembers("ListTeachers", courseID, m.teachers)
}

// AddTeacher implements Gateway.
func (m *Memory) AddTeacher(_ context.Context, courseID, email string) error {
	return m.addMember("AddTeacher", "teacher", courseID, email, m.teachers)
}

// RemoveTeacher implements Gateway.
func (m *Memory) RemoveTeacher(_ context.Context, courseID, email string) error {
	return m.removeMember("RemoveTeacher", "teacher", courseID, email, m.teachers, true)
}

// ListStudents implements Gateway.
func (m *Memory) ListStudents(_ context.Context, courseID string) ([]Member, error) {
	return m.listMembers("ListStudents", courseID, m.students)
}

// AddStudent implements Gateway.
func (m *Memory) AddStudent(_ context.Context, courseID, email string) error {
	return m.addMember("AddStudent", "student", courseID, email, m.students)
}

// RemoveStudent implements Gateway.
func (m *Memory) RemoveStudent(_ context.Context, courseID, email string) error {
	return m.removeMember("RemoveStudent", "student", courseID, email, m.students, false)
}

func (m *Memory) listMembers(method, courseID string, roster map[string][]string) ([]Member, error) {
	if err := m.record(method, courseID, ""); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, err := m.lookup(courseID)
	if err != nil {
		return nil, err
	}
	emails := roster[c.ID]
	members := make([]Member, 0, len(emails))
	for _, e := range emails {
		members = append(members, Member{
			CourseID: c.ID,
			UserID:   e,
			Profile:  UserProfile{ID: e, EmailAddress: e},
		})
	}
	return members, nil
}

func (m *Memory) addMember(method, role, courseID, email string, roster map[string][]string) error {
	if err := m.record(method, courseID, email); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.lookup(courseID)
	if err != nil {
		return err
	}
	email = NormalizeEmail(email)
	if slices.Contains(roster[c.ID], email) {
		return &errors.MembershipError{Kind: errors.AlreadyMember, Role: role, Course: courseID, Email: email}
	}
	roster[c.ID] = append(roster[c.ID], email)
	return nil
}

func (m *Memory) removeMember(method, role, courseID, email string, roster map[string][]string, guardOwner bool) error {
	if err := m.record(method, courseID, email); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, err := m.lookup(courseID)
	if err != nil {
		return err
	}
	email = NormalizeEmail(email)
	if guardOwner && c.OwnerID != "" && c.OwnerID == email {
		return &errors.APIError{
			Service:    "classroom",
			StatusCode: 400,
			Status:     "FAILED_PRECONDITION",
			Message:    "CannotRemoveOwner",
		}
	}
	i := slices.Index(roster[c.ID], email)
	if i < 0 {
		return &errors.MembershipError{Kind: errors.NotMember, Role: role, Course: courseID, Email: email}
	}
	roster[c.ID] = slices.Delete(roster[c.ID], i, i+1)
	return nil
}

// record logs the call and consults Fail. It must be called without m.mu held.
func (m *Memory) record(method, id, email string) error {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Method: method, ID: id, Email: email})
	fail := m.Fail
	m.mu.Unlock()
	if fail != nil {
		return fail(method, id)
	}
	return nil
}

func (m *Memory) resolve(id string) string {
	if target, ok := m.aliases[id]; ok {
		return target
	}
	return id
}

func (m *Memory) lookup(id string) (*Course, error) {
	c, ok := m.courses[m.resolve(id)]
	if !ok {
		return nil, errors.NewNotFoundError("course", id)
	}
	return c, nil
}

func (m *Memory) newID() string {
	m.nextID++
	return strconv.Itoa(m.nextID)
}

func applyPayload(c *Course, p CoursePayload, mask []string) {
	set := func(field string) bool {
		return mask == nil || slices.Contains(mask, field)
	}
	if set("name") {
		c.Name = p.Name
	}
	if set("section") {
		c.Section = p.Section
	}
	if set("room") {
		c.Room = p.Room
	}
	if set("description") {
		c.Description = ""
		if p.Description != nil {
			c.Description = *p.Description
		}
	}
	if set("descriptionHeading") && p.DescriptionHeading != nil {
		c.DescriptionHeading = *p.DescriptionHeading
	}
}

func compareIDs(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai - bi
	}
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
