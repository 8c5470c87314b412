package repositories

import (
	"context"

	"attendtrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// studentRepository implements StudentRepository interface
type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

// Create inserts the student and reserves its email in one transaction
func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := reserveEmail(tx, student.Email, models.EmailOwnerStudent); err != nil {
			return err
		}
		return tx.Create(student).Error
	})
}

// GetByRegNo gets a student by registration number
func (r *studentRepository) GetByRegNo(ctx context.Context, regNo string) (*models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Where("reg_no = ?", regNo).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByRegNo checks if registration number exists
func (r *studentRepository) ExistsByRegNo(ctx context.Context, regNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("reg_no = ?", regNo).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if email exists
func (r *studentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Count returns the number of registered students
func (r *studentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Count(&count).Error
	return count, err
}
