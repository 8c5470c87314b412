package handlers

import (
	"attendtrack/internal/core/services"
	"attendtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, token and profile endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// TokenRequest represents the password-flow credentials. username is a
// student registration number or an instructor email.
type TokenRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterStudent handles student registration
// @Summary Register student
// @Description Create a student account identified by registration number
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterStudentInput true "Student data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/student [post]
func (h *AuthHandler) RegisterStudent(c *fiber.Ctx) error {
	var req services.RegisterStudentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	student, err := h.authService.RegisterStudent(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to register student")
	}

	return response.Created(c, "Student registered successfully", student)
}

// RegisterInstructor handles instructor registration
// @Summary Register instructor
// @Description Create an instructor account identified by staff id
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInstructorInput true "Instructor data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register/instructor [post]
func (h *AuthHandler) RegisterInstructor(c *fiber.Ctx) error {
	var req services.RegisterInstructorInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	instructor, err := h.authService.RegisterInstructor(c.Context(), &req)
	if err != nil {
		return handleError(c, err, "Failed to register instructor")
	}

	return response.Created(c, "Instructor registered successfully", instructor)
}

// Token handles login
// @Summary Issue access token
// @Description Exchange credentials for a bearer token. Accepts JSON or form data.
// @Tags Auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param body body TokenRequest true "Credentials"
// @Success 200 {object} services.TokenResponse
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	fields := map[string]string{}
	if req.Username == "" {
		fields["username"] = "is required"
	}
	if req.Password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return response.ValidationFailed(c, fields)
	}

	token, err := h.authService.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return handleError(c, err, "Failed to login")
	}

	return c.JSON(token)
}

// Me returns the authenticated caller
// @Summary Current user
// @Description Returns the token subject, role and profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to get user")
	}

	me, err := h.authService.Me(c.Context(), caller)
	if err != nil {
		return handleError(c, err, "Failed to get user")
	}

	return response.Success(c, "User retrieved successfully", me)
}
