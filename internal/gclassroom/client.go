// Package gclassroom implements classroom.Gateway over the Google
// Classroom REST API.
package gclassroom

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hxeb/hxebclass/internal/transport"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/constants"
	"github.com/hxeb/hxebclass/pkg/errors"
)

// Client is a classroom.Gateway backed by the REST API.
type Client struct {
	http     *transport.Client
	endpoint string
	pageSize int
}

var _ classroom.Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API base URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimRight(endpoint, "/")
		}
	}
}

// WithPageSize sets the page size used for list calls.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// New creates a REST gateway using tc for requests.
func New(tc *transport.Client, opts ...Option) *Client {
	c := &Client{
		http:     tc,
		endpoint: constants.ClassroomEndpoint,
		pageSize: constants.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listCoursesResponse struct {
	Courses       []classroom.Course `json:"courses"`
	NextPageToken string             `json:"nextPageToken"`
}

type listAliasesResponse struct {
	Aliases []struct {
		Alias string `json:"alias"`
	} `json:"aliases"`
	NextPageToken string `json:"nextPageToken"`
}

type listTeachersResponse struct {
	Teachers      []classroom.Member `json:"teachers"`
	NextPageToken string             `json:"nextPageToken"`
}

type listStudentsResponse struct {
	Students      []classroom.Member `json:"students"`
	NextPageToken string             `json:"nextPageToken"`
}

// ListCourses returns every course visible to the caller, following pages.
func (c *Client) ListCourses(ctx context.Context) ([]classroom.Course, error) {
	var courses []classroom.Course
	token := ""
	for {
		var page listCoursesResponse
		if err := c.call(ctx, http.MethodGet, c.pageURL("/v1/courses", token), nil, &page); err != nil {
			return nil, err
		}
		courses = append(courses, page.Courses...)
		if page.NextPageToken == "" {
			return courses, nil
		}
		token = page.NextPageToken
	}
}

// GetCourse implements classroom.Gateway.
func (c *Client) GetCourse(ctx context.Context, id string) (*classroom.Course, error) {
	var course classroom.Course
	if err := c.call(ctx, http.MethodGet, c.courseURL(id, ""), nil, &course); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("course", id)
		}
		return nil, err
	}
	return &course, nil
}

// CreateCourse implements classroom.Gateway.
func (c *Client) CreateCourse(ctx context.Context, payload classroom.CoursePayload) (*classroom.Course, error) {
	var course classroom.Course
	if err := c.call(ctx, http.MethodPost, c.endpoint+"/v1/courses", payload, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// PatchCourse updates the mutable course fields set on payload.
func (c *Client) PatchCourse(ctx context.Context, id string, payload classroom.CoursePayload) (*classroom.Course, error) {
	body := payload
	body.ID = ""
	body.OwnerID = ""
	body.CourseState = ""

	q := url.Values{"updateMask": {strings.Join(payload.UpdateMask(), ",")}}
	var course classroom.Course
	if err := c.call(ctx, http.MethodPatch, c.courseURL(id, "")+"?"+q.Encode(), body, &course); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("course", id)
		}
		return nil, err
	}
	return &course, nil
}

// SetCourseState implements classroom.Gateway.
func (c *Client) SetCourseState(ctx context.Context, id string, state classroom.CourseState) (*classroom.Course, error) {
	q := url.Values{"updateMask": {"courseState"}}
	body := map[string]classroom.CourseState{"courseState": state}
	var course classroom.Course
	if err := c.call(ctx, http.MethodPatch, c.courseURL(id, "")+"?"+q.Encode(), body, &course); err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewNotFoundError("course", id)
		}
		return nil, err
	}
	return &course, nil
}

// DeleteCourse deletes an archived course.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	err := c.call(ctx, http.MethodDelete, c.courseURL(id, ""), nil, nil)
	switch {
	case err == nil:
		return nil
	case errors.IsPreconditionFailed(err):
		return &errors.PreconditionError{
			Operation: "delete",
			Resource:  "course",
			ID:        id,
			Message:   "course must be archived before it can be deleted",
			Err:       err,
		}
	case errors.IsNotFound(err):
		return errors.NewNotFoundError("course", id)
	default:
		return err
	}
}

// ListAliases returns the aliases of a course, following pages.
func (c *Client) ListAliases(ctx context.Context, courseID string) ([]string, error) {
	var aliases []string
	token := ""
	for {
		var page listAliasesResponse
		if err := c.call(ctx, http.MethodGet, c.pageURL(c.coursePath(courseID, "/aliases"), token), nil, &page); err != nil {
			if errors.IsNotFound(err) {
				return nil, errors.NewNotFoundError("course", courseID)
			}
			return nil, err
		}
		for _, a := range page.Aliases {
			aliases = append(aliases, a.Alias)
		}
		if page.NextPageToken == "" {
			return aliases, nil
		}
		token = page.NextPageToken
	}
}

// ListTeachers implements classroom.Gateway.
func (c *Client) ListTeachers(ctx context.Context, courseID string) ([]classroom.Member, error) {
	var members []classroom.Member
	token := ""
	for {
		var page listTeachersResponse
		if err := c.call(ctx, http.MethodGet, c.pageURL(c.coursePath(courseID, "/teachers"), token), nil, &page); err != nil {
			return nil, err
		}
		members = append(members, page.Teachers...)
		if page.NextPageToken == "" {
			return members, nil
		}
		token = page.NextPageToken
	}
}

// AddTeacher implements classroom.Gateway.
func (c *Client) AddTeacher(ctx context.Context, courseID, email string) error {
	return c.addMember(ctx, "teacher", "/teachers", courseID, email)
}

// RemoveTeacher implements classroom.Gateway.
func (c *Client) RemoveTeacher(ctx context.Context, courseID, email string) error {
	return c.removeMember(ctx, "teacher", "/teachers/", courseID, email)
}

// ListStudents implements classroom.Gateway.
func (c *Client) ListStudents(ctx context.Context, courseID string) ([]classroom.Member, error) {
	var members []classroom.Member
	token := ""
	for {
		var page listStudentsResponse
		if err := c.call(ctx, http.MethodGet, c.pageURL(c.coursePath(courseID, "/students"), token), nil, &page); err != nil {
			return nil, err
		}
		members = append(members, page.Students...)
		if page.NextPageToken == "" {
			return members, nil
		}
		token = page.NextPageToken
	}
}

// AddStudent implements classroom.Gateway.
func (c *Client) AddStudent(ctx context.Context, courseID, email string) error {
	return c.addMember(ctx, "student", "/students", courseID, email)
}

// RemoveStudent implements classroom.Gateway.
func (c *Client) RemoveStudent(ctx context.Context, courseID, email string) error {
	return c.removeMember(ctx, "student", "/students/", courseID, email)
}

func (c *Client) addMember(ctx context.Context, role, path, courseID, email string) error {
	body := map[string]string{"userId": email}
	err := c.call(ctx, http.MethodPost, c.endpoint+c.coursePath(courseID, path), body, nil)
	if err != nil && errors.IsAlreadyExists(err) {
		return &errors.MembershipError{Kind: errors.AlreadyMember, Role: role, Course: courseID, Email: email, Err: err}
	}
	return err
}

func (c *Client) removeMember(ctx context.Context, role, path, courseID, email string) error {
	err := c.call(ctx, http.MethodDelete, c.endpoint+c.coursePath(courseID, path+url.PathEscape(email)), nil, nil)
	if err != nil && errors.IsNotFound(err) {
		return &errors.MembershipError{Kind: errors.NotMember, Role: role, Course: courseID, Email: email, Err: err}
	}
	return err
}

func (c *Client) call(ctx context.Context, method, target string, body, out any) error {
	req, err := transport.NewJSONRequest(ctx, method, target, body)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(resp, constants.ClassroomService, out)
}

func (c *Client) coursePath(id, suffix string) string {
	return "/v1/courses/" + url.PathEscape(id) + suffix
}

func (c *Client) courseURL(id, suffix string) string {
	return c.endpoint + c.coursePath(id, suffix)
}

func (c *Client) pageURL(path, token string) string {
	q := url.Values{"pageSize": {strconv.Itoa(c.pageSize)}}
	if token != "" {
		q.Set("pageToken", token)
	}
	return c.endpoint + path + "?" + q.Encode()
}
