package repositories

import (
	"context"

	"attendtrack/internal/adapters/persistence/models"
)

// StudentRepository defines student repository interface
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByRegNo(ctx context.Context, regNo string) (*models.Student, error)
	ExistsByRegNo(ctx context.Context, regNo string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// InstructorRepository defines instructor repository interface.
// Admin accounts live in the same table.
type InstructorRepository interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	GetByStaffID(ctx context.Context, staffID uint) (*models.Instructor, error)
	GetByEmail(ctx context.Context, email string) (*models.Instructor, error)
	ExistsByStaffID(ctx context.Context, staffID uint) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
}

// CourseRepository defines course repository interface
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*models.Course, int64, error)
}

// SessionFilter narrows class session listings
type SessionFilter struct {
	CourseID uint
}

// ClassSessionRepository defines class session repository interface
type ClassSessionRepository interface {
	Create(ctx context.Context, session *models.ClassSession) error
	GetByID(ctx context.Context, id uint) (*models.ClassSession, error)
	List(ctx context.Context, filter SessionFilter, offset, limit int) ([]*models.ClassSession, int64, error)
}

// AttendanceFilter narrows attendance listings. Zero values mean no filter.
type AttendanceFilter struct {
	StudentID uint
	SessionID uint
	Status    string
}

// AttendanceRepository defines attendance repository interface
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.Attendance) error
	Exists(ctx context.Context, studentID, sessionID uint) (bool, error)
	List(ctx context.Context, filter AttendanceFilter, offset, limit int) ([]*models.Attendance, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// EmbeddingRepository defines facial embedding repository interface
type EmbeddingRepository interface {
	Create(ctx context.Context, embedding *models.FacialEmbedding) error
	CountByStudent(ctx context.Context, studentID uint) (int64, error)
}
