package repositories

import (
	"context"

	"attendtrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// courseRepository implements CourseRepository interface
type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Preload("Instructor").Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Where("course_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *courseRepository) List(ctx context.Context, offset, limit int) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Course{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Instructor").
		Order("course_code ASC").
		Offset(offset).
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// classSessionRepository implements ClassSessionRepository interface
type classSessionRepository struct {
	db *gorm.DB
}

// NewClassSessionRepository creates a new class session repository
func NewClassSessionRepository(db *gorm.DB) ClassSessionRepository {
	return &classSessionRepository{db: db}
}

func (r *classSessionRepository) Create(ctx context.Context, session *models.ClassSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *classSessionRepository) GetByID(ctx context.Context, id uint) (*models.ClassSession, error) {
	var session models.ClassSession
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *classSessionRepository) List(ctx context.Context, filter SessionFilter, offset, limit int) ([]*models.ClassSession, int64, error) {
	var sessions []*models.ClassSession
	var total int64

	query := r.db.WithContext(ctx).Model(&models.ClassSession{})
	if filter.CourseID != 0 {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Course").
		Preload("Instructor").
		Order("start_time ASC").
		Offset(offset).
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}
