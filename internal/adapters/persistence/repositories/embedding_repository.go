package repositories

import (
	"context"

	"attendtrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

type embeddingRepository struct {
	db *gorm.DB
}

// NewEmbeddingRepository creates a new facial embedding repository
func NewEmbeddingRepository(db *gorm.DB) EmbeddingRepository {
	return &embeddingRepository{db: db}
}

func (r *embeddingRepository) Create(ctx context.Context, embedding *models.FacialEmbedding) error {
	return r.db.WithContext(ctx).Create(embedding).Error
}

func (r *embeddingRepository) CountByStudent(ctx context.Context, studentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FacialEmbedding{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}
