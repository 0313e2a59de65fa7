package classroom

import "context"

// Gateway is the capability set hxebclass needs from the remote service.
// Every method is one logical round trip and may fail.
//
// Course IDs may be either the remote numeric ID or an alias.
// Implementations report:
//   - a NotFound error (errors.IsNotFound) when a course does not exist,
//   - AlreadyMember / NotMember membership errors for idempotent roster conflicts,
//   - a precondition error when deleting a course that is not archived
//     or removing the course owner from its teachers,
//   - transport errors when the service cannot be reached.
type Gateway interface {
	ListCourses(ctx context.Context) ([]Course, error)
	GetCourse(ctx context.Context, id string) (*Course, error)
	CreateCourse(ctx context.Context, payload CoursePayload) (*Course, error)
	PatchCourse(ctx context.Context, id string, payload CoursePayload) (*Course, error)
	SetCourseState(ctx context.Context, id string, state CourseState) (*Course, error)
	DeleteCourse(ctx context.Context, id string) error
	ListAliases(ctx context.Context, courseID string) ([]string, error)

	ListTeachers(ctx context.Context, courseID string) ([]Member, error)
	AddTeacher(ctx context.Context, courseID, email string) error
	RemoveTeacher(ctx context.Context, courseID, email string) error

	ListStudents(ctx context.Context, courseID string) ([]Member, error)
	AddStudent(ctx context.Context, courseID, email string) error
	RemoveStudent(ctx context.Context, courseID, email string) error
}

// Describe fetches a course and both of its rosters.
func Describe(ctx context.Context, gw Gateway, id string) (*Details, error) {
	course, err := gw.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	teachers, err := gw.ListTeachers(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	students, err := gw.ListStudents(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	return &Details{Course: *course, Teachers: teachers, Students: students}, nil
}
