package handlers

import (
	"errors"
	"log"

	"attendtrack/internal/adapters/http/middleware"
	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleError maps service errors onto HTTP responses. Unexpected errors
// are logged and answered with the generic fallback message.
func handleError(c *fiber.Ctx, err error, fallback string) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return response.ValidationFailed(c, verr.Fields)
	}

	switch domain.Kind(err) {
	case domain.ErrValidation:
		return response.BadRequest(c, err.Error())
	case domain.ErrNotFound:
		return response.NotFound(c, err.Error())
	case domain.ErrConflict:
		return response.Conflict(c, err.Error())
	case domain.ErrUnauthenticated:
		return response.Unauthorized(c, err.Error())
	case domain.ErrForbidden:
		return response.Forbidden(c, err.Error())
	}

	log.Printf("❌ %s [%s %s]: %v", fallback, c.Method(), c.Path(), err)
	return response.InternalServerError(c, fallback)
}

// principal returns the authenticated caller. Routes using it sit behind
// AuthMiddleware, so a missing principal is an unauthenticated request.
func principal(c *fiber.Ctx) (domain.Principal, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return domain.Principal{}, domain.ErrTokenMissing
	}
	return p, nil
}
