package services

import (
	"attendtrack/internal/core/domain"
)

// Note: AuthService implementation is in auth_service.go
// Note: AttendanceService implementation is in attendance_service.go

// Authenticator turns a bearer token into a principal. Guard implements it;
// the HTTP middleware depends only on this interface.
type Authenticator interface {
	Authenticate(token string) (domain.Principal, error)
	Authorize(principal domain.Principal, allowed ...domain.Role) error
}

var _ Authenticator = (*Guard)(nil)
