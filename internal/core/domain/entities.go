package domain

import (
	"strings"
	"time"
)

// Role represents the role tag carried by every identity and token
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Roles lists every role the API knows about
var Roles = []Role{RoleAdmin, RoleInstructor, RoleStudent}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// IsStaff is true for instructors and admins
func (r Role) IsStaff() bool {
	return r == RoleInstructor || r == RoleAdmin
}

// ParseRole normalizes a role string, returning false for unknown roles
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

// AttendanceStatus is the state recorded for a student in a class session
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "Present"
	StatusAbsent  AttendanceStatus = "Absent"
	StatusLate    AttendanceStatus = "Late"
)

// AttendanceStatuses lists the accepted statuses
var AttendanceStatuses = []AttendanceStatus{StatusPresent, StatusAbsent, StatusLate}

// ParseAttendanceStatus accepts any casing ("present", "LATE") and returns the canonical form
func ParseAttendanceStatus(s string) (AttendanceStatus, bool) {
	for _, st := range AttendanceStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// Principal is the authenticated caller derived from a verified token
type Principal struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

// Is reports whether the principal holds one of the given roles
func (p Principal) Is(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
