// Package errors provides custom error types for hxebclass.
// These errors let the sync engine tell expected remote outcomes
// (not found, membership conflicts) apart from real failures, and let
// the CLI report them programmatically.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are the standard library functions, re-exported so callers
// need only this package.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors.
var (
	// ErrNotFound indicates that a requested resource was not found.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyMember indicates that a user is already a member of a course.
	ErrAlreadyMember = errors.New("already a member")

	// ErrNotMember indicates that a user is not a member of a course.
	ErrNotMember = errors.New("not a member")

	// ErrPreconditionFailed indicates a state transition precondition was violated.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrTransport indicates the remote service could not be reached.
	ErrTransport = errors.New("transport failure")

	// ErrUnavailable indicates that the remote service is temporarily unavailable.
	ErrUnavailable = errors.New("service unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnauthenticated indicates missing or rejected credentials.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// MembershipKind distinguishes the two idempotency conflicts a roster
// change can report.
type MembershipKind int

const (
	// AlreadyMember is reported when adding an existing member.
	AlreadyMember MembershipKind = iota + 1
	// NotMember is reported when removing a user who is not a member.
	NotMember
)

// String returns the conflict code.
func (k MembershipKind) String() string {
	switch k {
	case AlreadyMember:
		return "ALREADY_MEMBER"
	case NotMember:
		return "NOT_MEMBER"
	default:
		return "UNKNOWN"
	}
}

// MembershipError represents a non-fatal roster conflict.
type MembershipError struct {
	Kind   MembershipKind
	Role   string // "teacher" or "student"
	Course string
	Email  string
	Err    error
}

// Error implements the error interface.
func (e *MembershipError) Error() string {
	switch e.Kind {
	case AlreadyMember:
		return fmt.Sprintf("%s %s is already a member of course %s", e.Role, e.Email, e.Course)
	case NotMember:
		return fmt.Sprintf("%s %s is not a member of course %s", e.Role, e.Email, e.Course)
	default:
		return fmt.Sprintf("membership conflict for %s %s in course %s", e.Role, e.Email, e.Course)
	}
}

// Unwrap implements errors.Unwrap.
func (e *MembershipError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *MembershipError) Is(target error) bool {
	switch e.Kind {
	case AlreadyMember:
		return target == ErrAlreadyMember
	case NotMember:
		return target == ErrNotMember
	}
	return false
}

// PreconditionError represents a violated state precondition, such as
// deleting a course that is not archived.
type PreconditionError struct {
	Operation string
	Resource  string
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *PreconditionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *PreconditionError) Is(target error) bool {
	return target == ErrPreconditionFailed
}

// APIError represents a structured error returned by the remote service.
type APIError struct {
	Service    string
	StatusCode int
	Status     string // machine readable status, e.g. "FAILED_PRECONDITION"
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		if e.Status != "" {
			return fmt.Sprintf("API error from %s (status %d %s): %s", e.Service, e.StatusCode, e.Status, e.Message)
		}
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrAlreadyExists:
		return e.StatusCode == http.StatusConflict
	case ErrPreconditionFailed:
		return e.Status == "FAILED_PRECONDITION" || e.StatusCode == http.StatusPreconditionFailed
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrUnauthenticated:
		return e.StatusCode == http.StatusUnauthorized
	case ErrUnavailable:
		return e.StatusCode >= 500
	}
	return false
}

// NewAPIError creates a new APIError.
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
	}
}

// TransportError represents a network level failure talking to a remote service.
type TransportError struct {
	Operation string
	Endpoint  string
	Err       error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("transport error during %s (%s): %v", e.Operation, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("transport error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// SyncError represents a failure syncing one course.
type SyncError struct {
	Alias string
	Stage string // "lookup", "create", "patch", "teachers"
	Err   error
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s failed at %s: %v", e.Alias, e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError.
func NewSyncError(alias, stage string, err error) *SyncError {
	return &SyncError{Alias: alias, Stage: stage, Err: err}
}

// ParseError represents an error when parsing data formats.
type ParseError struct {
	Format  string // "json", "yaml", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations.
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ResourceError represents an error during resource operations.
type ResourceError struct {
	Operation string // "create", "query", "open", "delete"
	Resource  string // "course", "database", "config"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// AuthenticationError represents an authentication/authorization error.
type AuthenticationError struct {
	Service string
	Method  string // "oauth", "service_account", etc.
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	if e.Service != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Service, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthenticated
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsAlreadyMember checks if an error reports an existing membership.
func IsAlreadyMember(err error) bool {
	return errors.Is(err, ErrAlreadyMember)
}

// IsNotMember checks if an error reports a missing membership.
func IsNotMember(err error) bool {
	return errors.Is(err, ErrNotMember)
}

// IsMembershipConflict reports whether err is one of the non-fatal roster conflicts.
func IsMembershipConflict(err error) bool {
	return IsAlreadyMember(err) || IsNotMember(err)
}

// IsPreconditionFailed checks if an error is a precondition failure.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}

// IsTransport checks if an error is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsRateLimited checks if an error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsCanceled checks if an error is a cancellation error.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapResource wraps an error as a ResourceError.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   err.Error(),
		Err:       err,
	}
}

// WrapIO wraps an error as an IOError.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   err.Error(),
		Err:       err,
	}
}

// WrapParse wraps an error as a ParseError.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapTransport wraps an error as a TransportError.
func WrapTransport(operation, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Operation: operation, Endpoint: endpoint, Err: err}
}

// Kind returns a short machine readable classification of err, used as
// a metric label and in sync reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidationError(err):
		return "validation"
	case IsNotFound(err):
		return "not_found"
	case IsPreconditionFailed(err):
		return "precondition"
	case IsMembershipConflict(err):
		return "membership"
	case IsTransport(err):
		return "transport"
	case IsRateLimited(err):
		return "rate_limited"
	case errors.Is(err, ErrUnauthenticated):
		return "auth"
	case IsCanceled(err):
		return "canceled"
	default:
		return "remote"
	}
}
