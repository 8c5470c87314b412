package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/metrics"
	"attendtrack/internal/pkg/pagination"
	"attendtrack/internal/pkg/validation"
)

// AttendanceService records and lists attendance. At most one record exists
// per (student, session); the storage unique index is the final arbiter.
type AttendanceService struct {
	attendanceRepo repositories.AttendanceRepository
	studentRepo    repositories.StudentRepository
	sessionRepo    repositories.ClassSessionRepository
	validator      *validation.Validator
	metrics        *metrics.Metrics
	now            func() time.Time
}

// NewAttendanceService creates a new attendance service. m may be nil.
func NewAttendanceService(
	attendanceRepo repositories.AttendanceRepository,
	studentRepo repositories.StudentRepository,
	sessionRepo repositories.ClassSessionRepository,
	validator *validation.Validator,
	m *metrics.Metrics,
) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		studentRepo:    studentRepo,
		sessionRepo:    sessionRepo,
		validator:      validator,
		metrics:        m,
		now:            time.Now,
	}
}

// MarkAttendanceInput represents a mark-attendance request. StudentRegNo is
// ignored for students (they can only mark themselves) and required for staff.
type MarkAttendanceInput struct {
	SessionID    uint       `json:"session_id" validate:"required,gt=0"`
	StudentRegNo string     `json:"student_id" validate:"max=32"`
	Status       string     `json:"status" validate:"required,attendance_status"`
	Timestamp    *time.Time `json:"timestamp"`
}

// ListAttendanceInput represents attendance list filters
type ListAttendanceInput struct {
	StudentRegNo string
	SessionID    uint
	Status       string
	Page         int
	Limit        int
}

// Mark records attendance for a student in a class session
func (s *AttendanceService) Mark(ctx context.Context, caller domain.Principal, input *MarkAttendanceInput) (*models.AttendanceResponse, error) {
	record, err := s.mark(ctx, caller, input)
	switch {
	case err == nil:
		s.metrics.AttendanceMarked("created")
	case errors.Is(err, domain.ErrAttendanceExists):
		s.metrics.AttendanceMarked("conflict")
	case domain.Kind(err) != nil:
		s.metrics.AttendanceMarked("rejected")
	default:
		s.metrics.AttendanceMarked("error")
	}
	return record, err
}

func (s *AttendanceService) mark(ctx context.Context, caller domain.Principal, input *MarkAttendanceInput) (*models.AttendanceResponse, error) {
	// 1. Validate input
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}
	status, _ := domain.ParseAttendanceStatus(input.Status)

	// 2. Resolve whose attendance is being marked
	regNo, err := targetStudent(caller, strings.TrimSpace(input.StudentRegNo))
	if err != nil {
		return nil, err
	}
	if regNo == "" {
		return nil, domain.NewValidationError("student_id", "is required")
	}

	// 3. Load student and session
	student, err := s.studentRepo.GetByRegNo(ctx, regNo)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	// 4. Reject duplicates up front; the unique index catches the races
	exists, err := s.attendanceRepo.Exists(ctx, student.ID, session.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAttendanceExists
	}

	// 5. Insert
	recordedAt := s.now().UTC()
	if input.Timestamp != nil && !input.Timestamp.IsZero() {
		recordedAt = input.Timestamp.UTC()
	}

	record := &models.Attendance{
		StudentID:  student.ID,
		SessionID:  session.ID,
		Status:     string(status),
		RecordedAt: recordedAt,
		MarkedBy:   caller.Subject,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.ErrAttendanceExists
		}
		return nil, err
	}

	record.Student = student
	return record.ToResponse(), nil
}

// List returns attendance records. Staff may filter freely; students only
// ever see their own records.
func (s *AttendanceService) List(ctx context.Context, caller domain.Principal, input ListAttendanceInput) (*pagination.Response, error) {
	regNo, err := targetStudent(caller, strings.TrimSpace(input.StudentRegNo))
	if err != nil {
		return nil, err
	}

	filter := repositories.AttendanceFilter{SessionID: input.SessionID}
	if input.Status != "" {
		status, ok := domain.ParseAttendanceStatus(input.Status)
		if !ok {
			return nil, domain.NewValidationError("status", "must be one of [Present Absent Late]")
		}
		filter.Status = string(status)
	}

	params := pagination.New(input.Page, input.Limit)

	if regNo != "" {
		student, err := s.studentRepo.GetByRegNo(ctx, regNo)
		if err != nil {
			if !repositories.IsNotFound(err) {
				return nil, err
			}
			if caller.Role == domain.RoleStudent {
				return nil, domain.ErrStudentNotFound
			}
			return pagination.NewResponse([]*models.AttendanceResponse{}, params, 0), nil
		}
		filter.StudentID = student.ID
	}

	return s.list(ctx, filter, params)
}

// ListByStudent returns one student's records. Staff only.
func (s *AttendanceService) ListByStudent(ctx context.Context, caller domain.Principal, regNo string, page, limit int) (*pagination.Response, error) {
	if err := requireRole(caller, staffRoles...); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByRegNo(ctx, strings.TrimSpace(regNo))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	filter := repositories.AttendanceFilter{StudentID: student.ID}
	return s.list(ctx, filter, pagination.New(page, limit))
}

func (s *AttendanceService) list(ctx context.Context, filter repositories.AttendanceFilter, params *pagination.Params) (*pagination.Response, error) {
	records, total, err := s.attendanceRepo.List(ctx, filter, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	return pagination.NewResponse(models.AttendanceResponses(records), params, total), nil
}

// targetStudent decides whose records a caller may touch. Students are
// pinned to themselves; staff act on whoever they name.
func targetStudent(caller domain.Principal, requested string) (string, error) {
	switch {
	case caller.Role == domain.RoleStudent:
		if requested != "" && requested != caller.Subject {
			return "", domain.ErrOtherStudentRecord
		}
		return caller.Subject, nil
	case caller.Role.IsStaff():
		return requested, nil
	default:
		return "", domain.ErrRoleNotPermitted
	}
}
