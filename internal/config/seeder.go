package config

import (
	"context"
	"log"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db    *gorm.DB
	admin AdminConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, admin AdminConfig) *Seeder {
	return &Seeder{db: db, admin: admin}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdmin(ctx); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdmin creates the bootstrap admin from ADMIN_* variables. Public
// registration never produces admins, so this is the only way to get one.
func (s *Seeder) seedAdmin(ctx context.Context) error {
	if !s.admin.Enabled() {
		return nil
	}

	repo := repositories.NewInstructorRepository(s.db)

	exists, err := repo.ExistsByStaffID(ctx, s.admin.StaffID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	exists, err = repo.ExistsByEmail(ctx, s.admin.Email)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("⚠️ Skipping admin seed: email %s already registered", s.admin.Email)
		return nil
	}

	hashed, err := password.Hash(s.admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Instructor{
		StaffID:   s.admin.StaffID,
		FirstName: "System",
		LastName:  "Administrator",
		Email:     s.admin.Email,
		Password:  hashed,
		Role:      string(domain.RoleAdmin),
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
