package services

import (
	"context"
	"log"
	"strings"
	"time"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/pagination"
	"attendtrack/internal/pkg/validation"
)

// ClassService manages the course catalogue and scheduled class sessions
type ClassService struct {
	courseRepo     repositories.CourseRepository
	sessionRepo    repositories.ClassSessionRepository
	instructorRepo repositories.InstructorRepository
	validator      *validation.Validator
}

// NewClassService creates a new class service
func NewClassService(
	courseRepo repositories.CourseRepository,
	sessionRepo repositories.ClassSessionRepository,
	instructorRepo repositories.InstructorRepository,
	validator *validation.Validator,
) *ClassService {
	return &ClassService{
		courseRepo:     courseRepo,
		sessionRepo:    sessionRepo,
		instructorRepo: instructorRepo,
		validator:      validator,
	}
}

// CreateCourseInput represents course creation input. StaffID is honoured
// only for admins; instructors always own the courses they create.
type CreateCourseInput struct {
	CourseCode string `json:"course_code" validate:"required,max=20"`
	CourseName string `json:"course_name" validate:"required,max=120"`
	StaffID    uint   `json:"staff_id"`
}

// CreateSessionInput represents class session creation input
type CreateSessionInput struct {
	CourseID  uint      `json:"course_id" validate:"required,gt=0"`
	Venue     string    `json:"venue" validate:"max=120"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Days      []string  `json:"days" validate:"max=7,dive,oneof=Mon Tue Wed Thu Fri Sat Sun"`
	StaffID   uint      `json:"staff_id"`
}

// CreateCourse adds a course to the catalogue
func (s *ClassService) CreateCourse(ctx context.Context, caller domain.Principal, input *CreateCourseInput) (*models.CourseResponse, error) {
	if err := requireRole(caller, staffRoles...); err != nil {
		return nil, err
	}
	input.CourseCode = strings.ToUpper(strings.TrimSpace(input.CourseCode))
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	owner, err := s.owner(ctx, caller, input.StaffID)
	if err != nil {
		return nil, err
	}

	exists, err := s.courseRepo.ExistsByCode(ctx, input.CourseCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrCourseCodeTaken
	}

	course := &models.Course{
		CourseCode:   input.CourseCode,
		CourseName:   strings.TrimSpace(input.CourseName),
		InstructorID: owner.ID,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.ErrCourseCodeTaken
		}
		return nil, err
	}

	course.Instructor = owner
	log.Printf("✅ Course created: %s by %s", course.CourseCode, caller.Subject)
	return course.ToResponse(), nil
}

// ListCourses lists courses ordered by code
func (s *ClassService) ListCourses(ctx context.Context, page, limit int) (*pagination.Response, error) {
	params := pagination.New(page, limit)
	courses, total, err := s.courseRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]*models.CourseResponse, 0, len(courses))
	for _, c := range courses {
		data = append(data, c.ToResponse())
	}
	return pagination.NewResponse(data, params, total), nil
}

// CreateSession schedules a class session for an existing course. Only the
// course owner or an admin may do so.
func (s *ClassService) CreateSession(ctx context.Context, caller domain.Principal, input *CreateSessionInput) (*models.ClassSessionResponse, error) {
	if err := requireRole(caller, staffRoles...); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, input.CourseID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	owner, err := s.owner(ctx, caller, input.StaffID)
	if err != nil {
		return nil, err
	}
	if caller.Role != domain.RoleAdmin && course.InstructorID != owner.ID {
		return nil, domain.ErrNotCourseOwner
	}

	session := &models.ClassSession{
		CourseID:     course.ID,
		InstructorID: owner.ID,
		Venue:        strings.TrimSpace(input.Venue),
		StartTime:    input.StartTime.UTC(),
		EndTime:      input.EndTime.UTC(),
		Days:         strings.Join(input.Days, ","),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	session.Course = course
	session.Instructor = owner
	return session.ToResponse(), nil
}

// ListSessions lists sessions, optionally for a single course
func (s *ClassService) ListSessions(ctx context.Context, courseID uint, page, limit int) (*pagination.Response, error) {
	params := pagination.New(page, limit)
	sessions, total, err := s.sessionRepo.List(ctx, repositories.SessionFilter{CourseID: courseID}, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]*models.ClassSessionResponse, 0, len(sessions))
	for _, cs := range sessions {
		data = append(data, cs.ToResponse())
	}
	return pagination.NewResponse(data, params, total), nil
}

// GetSession gets a class session by id
func (s *ClassService) GetSession(ctx context.Context, id uint) (*models.ClassSessionResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return session.ToResponse(), nil
}

// owner resolves the instructor a course or session belongs to
func (s *ClassService) owner(ctx context.Context, caller domain.Principal, requested uint) (*models.Instructor, error) {
	staffID := requested
	if caller.Role != domain.RoleAdmin || staffID == 0 {
		id, err := parseStaffID(caller.Subject)
		if err != nil {
			return nil, domain.ErrInstructorNotFound
		}
		staffID = id
	}

	instructor, err := s.instructorRepo.GetByStaffID(ctx, staffID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInstructorNotFound
		}
		return nil, err
	}
	return instructor, nil
}
