package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/jwt"
	"attendtrack/internal/pkg/metrics"
	"attendtrack/internal/pkg/password"
	"attendtrack/internal/pkg/validation"
)

// AuthService handles registration, login and profile lookup
type AuthService struct {
	studentRepo    repositories.StudentRepository
	instructorRepo repositories.InstructorRepository
	issuer         *jwt.Issuer
	validator      *validation.Validator
	metrics        *metrics.Metrics
	compare        func(plain, hash string) bool
}

// NewAuthService creates a new auth service. m may be nil.
func NewAuthService(
	studentRepo repositories.StudentRepository,
	instructorRepo repositories.InstructorRepository,
	issuer *jwt.Issuer,
	validator *validation.Validator,
	m *metrics.Metrics,
) *AuthService {
	return &AuthService{
		studentRepo:    studentRepo,
		instructorRepo: instructorRepo,
		issuer:         issuer,
		validator:      validator,
		metrics:        m,
		compare:        comparePassword,
	}
}

// RegisterStudentInput represents student registration input
type RegisterStudentInput struct {
	RegNo       string `json:"regno" validate:"required,max=32"`
	FirstName   string `json:"first_name" validate:"required,max=60"`
	MiddleName  string `json:"middle_name" validate:"max=60"`
	LastName    string `json:"last_name" validate:"required,max=60"`
	Email       string `json:"email" validate:"required,email,max=120"`
	PhoneNumber string `json:"phone_number" validate:"max=20"`
	YearOfStudy int    `json:"year_of_study" validate:"omitempty,min=1,max=10"`
	Programme   string `json:"programme" validate:"max=120"`
	Password    string `json:"password" validate:"required,min=5,max=72"`
}

// RegisterInstructorInput represents instructor registration input
type RegisterInstructorInput struct {
	StaffID     uint   `json:"staff_id" validate:"required,gt=0"`
	FirstName   string `json:"first_name" validate:"required,max=60"`
	MiddleName  string `json:"middle_name" validate:"max=60"`
	LastName    string `json:"last_name" validate:"required,max=60"`
	Email       string `json:"email" validate:"required,email,max=120"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Password    string `json:"password" validate:"required,min=5,max=72"`
}

// TokenResponse is the OAuth2 password-flow response body
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// MeResponse describes the authenticated caller
type MeResponse struct {
	Subject   string      `json:"subject"`
	Role      domain.Role `json:"role"`
	ExpiresAt int64       `json:"expires_at,omitempty"`
	Profile   interface{} `json:"profile,omitempty"`
}

// RegisterStudent registers a new student
func (s *AuthService) RegisterStudent(ctx context.Context, input *RegisterStudentInput) (*models.StudentResponse, error) {
	input.RegNo = strings.TrimSpace(input.RegNo)
	input.Email = normalizeEmail(input.Email)

	// 1. Validate input
	if err := s.validateRegistration(input, input.Password); err != nil {
		return nil, err
	}

	// 2. Check if registration number already exists
	exists, err := s.studentRepo.ExistsByRegNo(ctx, input.RegNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrRegNoTaken
	}

	// 3. Check if email is used by any identity; Create enforces it again
	if err := s.checkEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	// 4. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create student
	year := input.YearOfStudy
	if year == 0 {
		year = 1
	}
	student := &models.Student{
		RegNo:       input.RegNo,
		FirstName:   strings.TrimSpace(input.FirstName),
		MiddleName:  strings.TrimSpace(input.MiddleName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       input.Email,
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		YearOfStudy: year,
		Programme:   strings.TrimSpace(input.Programme),
		Password:    hashed,
		Role:        string(domain.RoleStudent),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if errors.Is(err, repositories.ErrEmailInUse) {
			return nil, domain.ErrEmailTaken
		}
		if repositories.IsDuplicateKey(err) {
			return nil, s.studentConflict(ctx, student)
		}
		return nil, err
	}

	s.metrics.Registered(student.Role)
	log.Printf("✅ Student registered: %s", student.RegNo)
	return student.ToResponse(), nil
}

// RegisterInstructor registers a new instructor. Admin accounts cannot be
// created through this path.
func (s *AuthService) RegisterInstructor(ctx context.Context, input *RegisterInstructorInput) (*models.InstructorResponse, error) {
	input.Email = normalizeEmail(input.Email)
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	// 1. Validate input
	if err := s.validateRegistration(input, input.Password); err != nil {
		return nil, err
	}

	// 2. Check staff id
	exists, err := s.instructorRepo.ExistsByStaffID(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrStaffIDTaken
	}

	// 3. Check email across both identity tables
	if err := s.checkEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}

	// 4. Check phone number
	exists, err = s.instructorRepo.ExistsByPhone(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrPhoneTaken
	}

	// 5. Hash password
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 6. Create instructor
	phone := input.PhoneNumber
	instructor := &models.Instructor{
		StaffID:     input.StaffID,
		FirstName:   strings.TrimSpace(input.FirstName),
		MiddleName:  strings.TrimSpace(input.MiddleName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       input.Email,
		PhoneNumber: &phone,
		Password:    hashed,
		Role:        string(domain.RoleInstructor),
	}

	if err := s.instructorRepo.Create(ctx, instructor); err != nil {
		if errors.Is(err, repositories.ErrEmailInUse) {
			return nil, domain.ErrEmailTaken
		}
		if repositories.IsDuplicateKey(err) {
			return nil, s.instructorConflict(ctx, instructor)
		}
		return nil, err
	}

	s.metrics.Registered(instructor.Role)
	log.Printf("✅ Instructor registered: %d", instructor.StaffID)
	return instructor.ToResponse(), nil
}

// Login authenticates a student by registration number or a staff member by
// email and issues an access token. Unknown identifiers and wrong passwords
// produce the same error.
func (s *AuthService) Login(ctx context.Context, identifier, plain string) (*TokenResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || plain == "" {
		s.metrics.LoginAttempt("invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}

	// 1. Resolve the identity
	subject, role, hash, err := s.lookupCredentials(ctx, identifier)
	if err != nil {
		s.metrics.LoginAttempt("error")
		return nil, err
	}

	// 2. Verify password; unknown identities still pay for a bcrypt compare
	if !s.compare(plain, hash) {
		s.metrics.LoginAttempt("invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Issue token
	token, _, err := s.issuer.Issue(subject, role)
	if err != nil {
		s.metrics.LoginAttempt("error")
		return nil, err
	}

	s.metrics.LoginAttempt("success")
	log.Printf("✅ User logged in: %s (%s)", subject, role)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.issuer.TTL().Seconds()),
	}, nil
}

// Me returns the caller's identity and, when it still exists, the profile
func (s *AuthService) Me(ctx context.Context, principal domain.Principal) (*MeResponse, error) {
	resp := &MeResponse{
		Subject: principal.Subject,
		Role:    principal.Role,
	}
	if !principal.ExpiresAt.IsZero() {
		resp.ExpiresAt = principal.ExpiresAt.Unix()
	}

	switch {
	case principal.Role == domain.RoleStudent:
		student, err := s.studentRepo.GetByRegNo(ctx, principal.Subject)
		if err != nil && !repositories.IsNotFound(err) {
			return nil, err
		}
		if student != nil {
			resp.Profile = student.ToResponse()
		}
	case principal.Role.IsStaff():
		staffID, err := parseStaffID(principal.Subject)
		if err != nil {
			return resp, nil
		}
		instructor, err := s.instructorRepo.GetByStaffID(ctx, staffID)
		if err != nil && !repositories.IsNotFound(err) {
			return nil, err
		}
		if instructor != nil {
			resp.Profile = instructor.ToResponse()
		}
	}
	return resp, nil
}

// lookupCredentials returns an empty hash when the identifier is unknown
func (s *AuthService) lookupCredentials(ctx context.Context, identifier string) (string, domain.Role, string, error) {
	student, err := s.studentRepo.GetByRegNo(ctx, identifier)
	if err == nil {
		return student.RegNo, domain.RoleStudent, student.Password, nil
	}
	if !repositories.IsNotFound(err) {
		return "", "", "", err
	}

	instructor, err := s.instructorRepo.GetByEmail(ctx, normalizeEmail(identifier))
	if err == nil {
		role, ok := domain.ParseRole(instructor.Role)
		if !ok {
			return "", "", "", nil
		}
		return instructor.Subject(), role, instructor.Password, nil
	}
	if !repositories.IsNotFound(err) {
		return "", "", "", err
	}
	return "", "", "", nil
}

func (s *AuthService) validateRegistration(input interface{}, plain string) error {
	if err := s.validator.Struct(input); err != nil {
		return err
	}
	if !password.ValidatePassword(plain) {
		return domain.NewValidationError("password", "must be between 5 characters and 72 bytes")
	}
	return nil
}

func (s *AuthService) checkEmailFree(ctx context.Context, email string) error {
	exists, err := s.studentRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailTaken
	}
	exists, err = s.instructorRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrEmailTaken
	}
	return nil
}

// studentConflict works out which unique column a racing insert hit
func (s *AuthService) studentConflict(ctx context.Context, student *models.Student) error {
	if exists, err := s.studentRepo.ExistsByRegNo(ctx, student.RegNo); err == nil && exists {
		return domain.ErrRegNoTaken
	}
	return domain.ErrEmailTaken
}

func (s *AuthService) instructorConflict(ctx context.Context, instructor *models.Instructor) error {
	if exists, err := s.instructorRepo.ExistsByStaffID(ctx, instructor.StaffID); err == nil && exists {
		return domain.ErrStaffIDTaken
	}
	if exists, err := s.instructorRepo.ExistsByEmail(ctx, instructor.Email); err == nil && exists {
		return domain.ErrEmailTaken
	}
	return domain.ErrPhoneTaken
}

// comparePassword checks plain against hash. An empty hash means the
// identity was not found and is compared against a dummy instead.
func comparePassword(plain, hash string) bool {
	if hash == "" {
		return password.VerifyDummy(plain)
	}
	return password.Verify(plain, hash)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func parseStaffID(subject string) (uint, error) {
	id, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
