package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds. Every error returned by the services wraps exactly one of
// these so the HTTP boundary can map it to a status code with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("resource not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Identity errors
var (
	ErrStudentNotFound    = newError(ErrNotFound, "student not found")
	ErrInstructorNotFound = newError(ErrNotFound, "instructor not found")
	ErrRegNoTaken         = newError(ErrConflict, "registration number already registered")
	ErrStaffIDTaken       = newError(ErrConflict, "staff id already registered")
	ErrEmailTaken         = newError(ErrConflict, "email already registered")
	ErrPhoneTaken         = newError(ErrConflict, "phone number already registered")
	ErrInvalidCredentials = newError(ErrUnauthenticated, "invalid credentials")
)

// Token errors
var (
	ErrTokenMissing = newError(ErrUnauthenticated, "access token required")
	ErrTokenExpired = newError(ErrUnauthenticated, "access token expired")
	ErrTokenInvalid = newError(ErrUnauthenticated, "invalid access token")
)

// Class and attendance errors
var (
	ErrCourseNotFound     = newError(ErrNotFound, "course not found")
	ErrSessionNotFound    = newError(ErrNotFound, "class session not found")
	ErrCourseCodeTaken    = newError(ErrConflict, "course code already exists")
	ErrAttendanceExists   = newError(ErrConflict, "attendance already marked for this session")
	ErrRoleNotPermitted   = newError(ErrForbidden, "you don't have permission to access this resource")
	ErrOtherStudentRecord = newError(ErrForbidden, "students may only mark or view their own attendance")
	ErrNotCourseOwner     = newError(ErrForbidden, "only the course instructor can schedule its sessions")
)

type kindError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ValidationError carries per-field messages for malformed input
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records another field failure and returns the receiver
func (e *ValidationError) Add(field, message string) *ValidationError {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Kind returns the error kind err belongs to, or nil for unexpected errors
func Kind(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrUnauthenticated, ErrForbidden} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
