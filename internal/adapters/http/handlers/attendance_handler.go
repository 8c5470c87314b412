package handlers

import (
	"strconv"

	"attendtrack/internal/core/services"
	"attendtrack/internal/pkg/pagination"
	"attendtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark records attendance
// @Summary Mark attendance
// @Description Students mark themselves; instructors and admins must name the student
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MarkAttendanceInput true "Attendance data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /mark-attendance [post]
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to mark attendance")
	}

	var req services.MarkAttendanceInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	record, err := h.attendanceService.Mark(c.Context(), caller, &req)
	if err != nil {
		return handleError(c, err, "Failed to mark attendance")
	}

	return response.Created(c, "Attendance marked successfully", record)
}

// List lists attendance records
// @Summary List attendance
// @Description Instructor/admin only. Filters by student, session and status.
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param student_id query string false "Student registration number"
// @Param session_id query int false "Class session id"
// @Param status query string false "Present, Absent or Late"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to list attendance")
	}

	input, ok := listInput(c)
	if !ok {
		return response.ValidationFailed(c, map[string]string{"session_id": "must be a positive integer"})
	}
	input.StudentRegNo = c.Query("student_id")

	result, err := h.attendanceService.List(c.Context(), caller, input)
	if err != nil {
		return handleError(c, err, "Failed to list attendance")
	}

	return response.Success(c, "Attendance retrieved successfully", result)
}

// ListByStudent lists one student's records
// @Summary List a student's attendance
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param student_id path string true "Student registration number"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /attendance/{student_id} [get]
func (h *AttendanceHandler) ListByStudent(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to list attendance")
	}

	page := pagination.GetParams(c)
	result, err := h.attendanceService.ListByStudent(c.Context(), caller, c.Params("student_id"), page.Page, page.Limit)
	if err != nil {
		return handleError(c, err, "Failed to list attendance")
	}

	return response.Success(c, "Attendance retrieved successfully", result)
}

// Mine lists the calling student's own records
// @Summary My attendance
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param session_id query int false "Class session id"
// @Param status query string false "Present, Absent or Late"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /me/attendance [get]
func (h *AttendanceHandler) Mine(c *fiber.Ctx) error {
	caller, err := principal(c)
	if err != nil {
		return handleError(c, err, "Failed to list attendance")
	}

	input, ok := listInput(c)
	if !ok {
		return response.ValidationFailed(c, map[string]string{"session_id": "must be a positive integer"})
	}
	input.StudentRegNo = caller.Subject

	result, err := h.attendanceService.List(c.Context(), caller, input)
	if err != nil {
		return handleError(c, err, "Failed to list attendance")
	}

	return response.Success(c, "Attendance retrieved successfully", result)
}

func listInput(c *fiber.Ctx) (services.ListAttendanceInput, bool) {
	page := pagination.GetParams(c)
	input := services.ListAttendanceInput{
		Status: c.Query("status"),
		Page:   page.Page,
		Limit:  page.Limit,
	}
	if raw := c.Query("session_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return input, false
		}
		input.SessionID = uint(id)
	}
	return input, true
}
