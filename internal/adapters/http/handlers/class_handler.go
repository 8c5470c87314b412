package handlers

import (
	"attendtrack/internal/core/services"
	"attendtrack/internal/pkg/pagination"
	"attendtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ClassHandler handles course and class session endpoints
type ClassHandler struct {
	classService *services.ClassService
}

// NewClassHandler creates a new class handler
func NewClassHandler(classService *services.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// CreateCourse creates a course
// @Summary Create course
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCourseInput true "Course data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /courses [post]
func (h *ClassHandler) CreateCourse(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to create course")
	}

	var req services.CreateCourseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.classService.CreateCourse(c.Context(), caller, &req)
	if err != nil {
		return handleError(c, err, "Failed to create course")
	}

	return response.Created(c, "Course created successfully", course)
}

// ListCourses lists courses
// @Summary List courses
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /courses [get]
func (h *ClassHandler) ListCourses(c *fiber.Ctx) error {
	page := pagination.GetParams(c)
	result, err := h.classService.ListCourses(c.Context(), page.Page, page.Limit)
	if err != nil {
		return handleError(c, err, "Failed to list courses")
	}

	return response.Success(c, "Courses retrieved successfully", result)
}

// CreateSession schedules a class session
// @Summary Create class session
// @Tags Classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateSessionInput true "Session data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions [post]
func (h *ClassHandler) CreateSession(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to create session")
	}

	var req services.CreateSessionInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	session, err := h.classService.CreateSession(c.Context(), caller, &req)
	if err != nil {
		return handleError(c, err, "Failed to create session")
	}

	return response.Created(c, "Session created successfully", session)
}

// ListSessions lists class sessions
// @Summary List class sessions
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param course_id query int false "Course id"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /sessions [get]
func (h *ClassHandler) ListSessions(c *fiber.Ctx) error {
	courseID := c.QueryInt("course_id", 0)
	if courseID < 0 {
		courseID = 0
	}

	page := pagination.GetParams(c)
	result, err := h.classService.ListSessions(c.Context(), uint(courseID), page.Page, page.Limit)
	if err != nil {
		return handleError(c, err, "Failed to list sessions")
	}

	return response.Success(c, "Sessions retrieved successfully", result)
}

// GetSession gets a class session
// @Summary Get class session
// @Tags Classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Session id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sessions/{id} [get]
func (h *ClassHandler) GetSession(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid session ID")
	}

	session, err := h.classService.GetSession(c.Context(), uint(id))
	if err != nil {
		return handleError(c, err, "Failed to get session")
	}

	return response.Success(c, "Session retrieved successfully", session)
}
