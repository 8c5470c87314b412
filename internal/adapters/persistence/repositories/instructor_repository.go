package repositories

import (
	"context"

	"attendtrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// instructorRepository implements InstructorRepository interface
type instructorRepository struct {
	db *gorm.DB
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *gorm.DB) InstructorRepository {
	return &instructorRepository{db: db}
}

// Create inserts the instructor and reserves its email in one transaction
func (r *instructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := reserveEmail(tx, instructor.Email, models.EmailOwnerInstructor); err != nil {
			return err
		}
		return tx.Create(instructor).Error
	})
}

// GetByStaffID gets an instructor by staff id
func (r *instructorRepository) GetByStaffID(ctx context.Context, staffID uint) (*models.Instructor, error) {
	var instructor models.Instructor
	err := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&instructor).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

// GetByEmail gets an instructor by email
func (r *instructorRepository) GetByEmail(ctx context.Context, email string) (*models.Instructor, error) {
	var instructor models.Instructor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&instructor).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

// ExistsByStaffID checks if staff id exists
func (r *instructorRepository) ExistsByStaffID(ctx context.Context, staffID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Instructor{}).Where("staff_id = ?", staffID).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *instructorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Instructor{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// ExistsByPhone checks if phone number exists
func (r *instructorRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Instructor{}).Where("phone_number = ?", phone).Count(&count).Error
	return count > 0, err
}

// CountByRole returns the number of staff accounts per role
func (r *instructorRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Instructor{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}
