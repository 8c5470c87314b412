package services

import (
	"context"

	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/core/domain"
)

// DashboardService aggregates system-wide counts for admins and the stats job
type DashboardService struct {
	studentRepo    repositories.StudentRepository
	instructorRepo repositories.InstructorRepository
	attendanceRepo repositories.AttendanceRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	studentRepo repositories.StudentRepository,
	instructorRepo repositories.InstructorRepository,
	attendanceRepo repositories.AttendanceRepository,
) *DashboardService {
	return &DashboardService{
		studentRepo:    studentRepo,
		instructorRepo: instructorRepo,
		attendanceRepo: attendanceRepo,
	}
}

// DashboardData represents the admin overview
type DashboardData struct {
	TotalStudents    int64            `json:"total_students"`
	TotalInstructors int64            `json:"total_instructors"`
	TotalAdmins      int64            `json:"total_admins"`
	TotalRecords     int64            `json:"total_records"`
	RecordsByStatus  map[string]int64 `json:"records_by_status"`
}

// GetSummary counts identities and attendance records. Every known status
// is present in RecordsByStatus, zero when unused.
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{RecordsByStatus: make(map[string]int64, len(domain.AttendanceStatuses))}

	// Identity counts
	students, err := s.studentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalStudents = students

	staff, err := s.instructorRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	data.TotalInstructors = staff[string(domain.RoleInstructor)]
	data.TotalAdmins = staff[string(domain.RoleAdmin)]

	// Attendance counts
	records, err := s.attendanceRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for _, status := range domain.AttendanceStatuses {
		n := records[string(status)]
		data.RecordsByStatus[string(status)] = n
		data.TotalRecords += n
	}

	return data, nil
}
