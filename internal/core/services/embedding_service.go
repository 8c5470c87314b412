package services

import (
	"context"
	"time"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/validation"
)

// EmbeddingService stores facial embeddings for students. Embeddings are
// opaque; nothing reads them back for matching.
type EmbeddingService struct {
	embeddingRepo repositories.EmbeddingRepository
	studentRepo   repositories.StudentRepository
	validator     *validation.Validator
}

// NewEmbeddingService creates a new embedding service
func NewEmbeddingService(
	embeddingRepo repositories.EmbeddingRepository,
	studentRepo repositories.StudentRepository,
	validator *validation.Validator,
) *EmbeddingService {
	return &EmbeddingService{
		embeddingRepo: embeddingRepo,
		studentRepo:   studentRepo,
		validator:     validator,
	}
}

// StoreEmbeddingInput represents an embedding upload
type StoreEmbeddingInput struct {
	Embedding string `json:"embedding" validate:"required,max=65535"`
}

// EmbeddingResponse DTO
type EmbeddingResponse struct {
	Student  string    `json:"student"`
	StoredAt time.Time `json:"stored_at"`
	Count    int64     `json:"count"`
}

// Store saves an embedding for the calling student
func (s *EmbeddingService) Store(ctx context.Context, caller domain.Principal, input *StoreEmbeddingInput) (*EmbeddingResponse, error) {
	if err := requireRole(caller, domain.RoleStudent); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByRegNo(ctx, caller.Subject)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, err
	}

	embedding := &models.FacialEmbedding{
		StudentID: student.ID,
		Embedding: input.Embedding,
	}
	if err := s.embeddingRepo.Create(ctx, embedding); err != nil {
		return nil, err
	}

	count, err := s.embeddingRepo.CountByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	return &EmbeddingResponse{
		Student:  student.RegNo,
		StoredAt: embedding.CreatedAt,
		Count:    count,
	}, nil
}
