package models

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Identities
// ============================================================

// Student represents students table
type Student struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RegNo       string    `gorm:"uniqueIndex;size:32;not null" json:"regno"`
	FirstName   string    `gorm:"size:60;not null" json:"first_name"`
	MiddleName  string    `gorm:"size:60" json:"middle_name"`
	LastName    string    `gorm:"size:60;not null" json:"last_name"`
	Email       string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number"`
	YearOfStudy int       `gorm:"not null;default:1" json:"year_of_study"`
	Programme   string    `gorm:"size:120" json:"programme"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Role        string    `gorm:"size:20;not null;default:'student'" json:"role"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// FullName joins the non-empty name parts
func (s *Student) FullName() string {
	return joinName(s.FirstName, s.MiddleName, s.LastName)
}

// StudentResponse DTO
type StudentResponse struct {
	RegNo       string    `json:"regno"`
	FirstName   string    `json:"first_name"`
	MiddleName  string    `json:"middle_name,omitempty"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	YearOfStudy int       `json:"year_of_study"`
	Programme   string    `json:"programme,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Student) ToResponse() *StudentResponse {
	return &StudentResponse{
		RegNo:       s.RegNo,
		FirstName:   s.FirstName,
		MiddleName:  s.MiddleName,
		LastName:    s.LastName,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		YearOfStudy: s.YearOfStudy,
		Programme:   s.Programme,
		Role:        s.Role,
		CreatedAt:   s.CreatedAt,
	}
}

// Instructor represents instructors table. Admins are instructors with the
// admin role; they are only ever created by the seeder.
type Instructor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StaffID     uint      `gorm:"uniqueIndex;not null" json:"staff_id"`
	FirstName   string    `gorm:"size:60;not null" json:"first_name"`
	MiddleName  string    `gorm:"size:60" json:"middle_name"`
	LastName    string    `gorm:"size:60;not null" json:"last_name"`
	Email       string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PhoneNumber *string   `gorm:"uniqueIndex;size:20" json:"phone_number"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Role        string    `gorm:"size:20;not null;default:'instructor'" json:"role"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Instructor) TableName() string {
	return "instructors"
}

// Subject is the token subject for an instructor: the staff id in decimal
func (i *Instructor) Subject() string {
	return strconv.FormatUint(uint64(i.StaffID), 10)
}

// InstructorResponse DTO
type InstructorResponse struct {
	StaffID     uint      `json:"staff_id"`
	FirstName   string    `json:"first_name"`
	MiddleName  string    `json:"middle_name,omitempty"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (i *Instructor) ToResponse() *InstructorResponse {
	resp := &InstructorResponse{
		StaffID:    i.StaffID,
		FirstName:  i.FirstName,
		MiddleName: i.MiddleName,
		LastName:   i.LastName,
		Email:      i.Email,
		Role:       i.Role,
		CreatedAt:  i.CreatedAt,
	}
	if i.PhoneNumber != nil {
		resp.PhoneNumber = *i.PhoneNumber
	}
	return resp
}

// Identity email owners
const (
	EmailOwnerStudent    = "student"
	EmailOwnerInstructor = "instructor"
)

// IdentityEmail reserves an email for exactly one student or instructor.
// Rows are written in the same transaction as the identity they belong to.
type IdentityEmail struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:120;not null"`
	Owner     string    `gorm:"size:20;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (IdentityEmail) TableName() string {
	return "identity_emails"
}

// FacialEmbedding stores an opaque embedding per student. Nothing matches
// against it yet.
type FacialEmbedding struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Embedding string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	Student   *Student  `gorm:"foreignKey:StudentID" json:"-"`
}

func (FacialEmbedding) TableName() string {
	return "facial_embeddings"
}

func joinName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// AutoMigrate creates or updates every table owned by the service and
// reserves the emails of identities created before identity_emails existed
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Student{},
		&Instructor{},
		&IdentityEmail{},
		&FacialEmbedding{},
		&Course{},
		&ClassSession{},
		&Attendance{},
	)
	if err != nil {
		return err
	}
	return backfillIdentityEmails(db)
}

func backfillIdentityEmails(db *gorm.DB) error {
	for _, src := range []struct{ table, owner string }{
		{"students", EmailOwnerStudent},
		{"instructors", EmailOwnerInstructor},
	} {
		err := db.Exec(
			"INSERT INTO identity_emails (email, owner, created_at) "+
				"SELECT t.email, ?, CURRENT_TIMESTAMP FROM "+src.table+" t "+
				"WHERE NOT EXISTS (SELECT 1 FROM identity_emails e WHERE e.email = t.email)",
			src.owner,
		).Error
		if err != nil {
			return err
		}
	}
	return nil
}
