package middleware

import (
	"strings"

	"attendtrack/internal/core/domain"
	"attendtrack/internal/core/services"
	"attendtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// AuthMiddleware verifies the bearer token on every request and stores the
// caller in c.Locals
func AuthMiddleware(auth services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Extract token from Authorization header
		token := BearerToken(c.Get(fiber.HeaderAuthorization))

		// 2. Verify
		principal, err := auth.Authenticate(token)
		if err != nil {
			return response.Unauthorized(c, err.Error())
		}

		// 3. Set caller in context
		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RoleMiddleware lets the request through only when the Authenticator
// authorizes the caller for one of allowedRoles
func RoleMiddleware(auth services.Authenticator, allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			return response.Unauthorized(c, domain.ErrTokenMissing.Error())
		}

		if err := auth.Authorize(principal, allowedRoles...); err != nil {
			return response.Forbidden(c, err.Error())
		}
		return c.Next()
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly(auth services.Authenticator) fiber.Handler {
	return RoleMiddleware(auth, domain.RoleAdmin)
}

// InstructorOrAdmin middleware allows staff roles
func InstructorOrAdmin(auth services.Authenticator) fiber.Handler {
	return RoleMiddleware(auth, domain.RoleInstructor, domain.RoleAdmin)
}

// StudentOnly middleware allows only students
func StudentOnly(auth services.Authenticator) fiber.Handler {
	return RoleMiddleware(auth, domain.RoleStudent)
}

// CurrentPrincipal returns the caller stored by AuthMiddleware
func CurrentPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	p, ok := c.Locals(principalKey).(domain.Principal)
	return p, ok
}

// BearerToken extracts the token from an Authorization header value. The
// scheme is matched case-insensitively.
func BearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
