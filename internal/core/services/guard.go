package services

import (
	"errors"

	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/jwt"
)

// Guard verifies access tokens and checks roles. It holds no per-request
// state: every call re-verifies the token.
type Guard struct {
	issuer *jwt.Issuer
}

// NewGuard creates a guard backed by the token issuer
func NewGuard(issuer *jwt.Issuer) *Guard {
	return &Guard{issuer: issuer}
}

// Authenticate verifies token and returns the caller it identifies
func (g *Guard) Authenticate(token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrTokenMissing
	}

	claims, err := g.issuer.Verify(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrTokenExpired
		}
		return domain.Principal{}, domain.ErrTokenInvalid
	}

	p := domain.Principal{
		Subject: claims.Subject,
		Role:    claims.Role,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

// Authorize returns ErrRoleNotPermitted unless the principal holds one of
// the allowed roles
func (g *Guard) Authorize(principal domain.Principal, allowed ...domain.Role) error {
	return requireRole(principal, allowed...)
}

func requireRole(principal domain.Principal, allowed ...domain.Role) error {
	if !principal.Role.Valid() || !principal.Is(allowed...) {
		return domain.ErrRoleNotPermitted
	}
	return nil
}

var staffRoles = []domain.Role{domain.RoleInstructor, domain.RoleAdmin}
