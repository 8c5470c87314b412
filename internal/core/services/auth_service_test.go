package services

import (
	"context"
	"errors"
	"testing"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	student, err := env.auth.RegisterStudent(ctx, studentInput("S100"))
	require.NoError(t, err)
	assert.Equal(t, "S100", student.RegNo)
	assert.Equal(t, "student", student.Role)
	assert.Equal(t, 1, student.YearOfStudy)

	var stored models.Student
	require.NoError(t, env.db.Where("reg_no = ?", "S100").First(&stored).Error)
	assert.NotEqual(t, "pw123", stored.Password)
	assert.Contains(t, stored.Password, "$2a$")
}

func TestRegisterStudentDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.RegisterStudent(ctx, studentInput("S100"))
	require.NoError(t, err)

	_, err = env.auth.RegisterStudent(ctx, studentInput("S100"))
	assert.ErrorIs(t, err, domain.ErrRegNoTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	sameEmail := studentInput("S101")
	sameEmail.Email = "S100@STUDENTS.test"
	_, err = env.auth.RegisterStudent(ctx, sameEmail)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	var count int64
	require.NoError(t, env.db.Model(&models.Student{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEmailUniqueAcrossIdentityTables(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.RegisterInstructor(ctx, instructorInput(7, "shared@uni.test", "0711000007"))
	require.NoError(t, err)

	in := studentInput("S100")
	in.Email = "shared@uni.test"
	_, err = env.auth.RegisterStudent(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterStudentValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.RegisterStudent(context.Background(), &RegisterStudentInput{Email: "not-an-email", Password: "pw1"})
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, domain.ErrValidation)
	for _, field := range []string{"regno", "first_name", "last_name", "email", "password"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestRegisterInstructor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inst, err := env.auth.RegisterInstructor(ctx, instructorInput(7, "Grace@Staff.test", "0711000007"))
	require.NoError(t, err)
	assert.Equal(t, "instructor", inst.Role)
	assert.Equal(t, "grace@staff.test", inst.Email)

	_, err = env.auth.RegisterInstructor(ctx, instructorInput(7, "other@staff.test", "0711000008"))
	assert.ErrorIs(t, err, domain.ErrStaffIDTaken)

	_, err = env.auth.RegisterInstructor(ctx, instructorInput(8, "other@staff.test", "0711000007"))
	assert.ErrorIs(t, err, domain.ErrPhoneTaken)

	_, err = env.auth.RegisterInstructor(ctx, instructorInput(0, "zero@staff.test", "0711000009"))
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "staff_id")
}

func TestLoginStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterStudent(ctx, studentInput("S100"))
	require.NoError(t, err)

	token, err := env.auth.Login(ctx, "S100", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, 1800, token.ExpiresIn)

	principal, err := env.guard.Authenticate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "S100", principal.Subject)
	assert.Equal(t, domain.RoleStudent, principal.Role)
}

func TestLoginInstructorByEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterInstructor(ctx, instructorInput(7, "grace@staff.test", "0711000007"))
	require.NoError(t, err)

	token, err := env.auth.Login(ctx, " GRACE@staff.test ", "teach123")
	require.NoError(t, err)

	principal, err := env.guard.Authenticate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "7", principal.Subject)
	assert.Equal(t, domain.RoleInstructor, principal.Role)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterStudent(ctx, studentInput("S100"))
	require.NoError(t, err)

	_, wrongPassword := env.auth.Login(ctx, "S100", "nope1")
	_, unknownUser := env.auth.Login(ctx, "S999", "pw123")
	_, empty := env.auth.Login(ctx, "", "")

	for _, err := range []error{wrongPassword, unknownUser, empty} {
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	}
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLoginComparesForUnknownUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterStudent(ctx, studentInput("S100"))
	require.NoError(t, err)

	var hashes []string
	env.auth.compare = func(plain, hash string) bool {
		hashes = append(hashes, hash)
		return comparePassword(plain, hash)
	}

	_, err = env.auth.Login(ctx, "S100", "nope1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = env.auth.Login(ctx, "S999", "pw123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	require.Len(t, hashes, 2)
	assert.NotEmpty(t, hashes[0])
	assert.Empty(t, hashes[1])

	assert.False(t, comparePassword("pw123", ""))
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterStudent(ctx, studentInput("S100"))
	require.NoError(t, err)

	me, err := env.auth.Me(ctx, asStudent("S100"))
	require.NoError(t, err)
	assert.Equal(t, "S100", me.Subject)
	profile, ok := me.Profile.(*models.StudentResponse)
	require.True(t, ok)
	assert.Equal(t, "s100@students.test", profile.Email)

	// token for an identity that no longer exists still answers
	me, err = env.auth.Me(ctx, asInstructor("404"))
	require.NoError(t, err)
	assert.Nil(t, me.Profile)
}

// racingInstructors lets another registration land after the email checks
// have passed but before the instructor row is written
type racingInstructors struct {
	repositories.InstructorRepository
	before func()
}

func (r *racingInstructors) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if r.before != nil {
		r.before()
		r.before = nil
	}
	return r.InstructorRepository.ExistsByPhone(ctx, phone)
}

func TestEmailUniqueWhenRegistrationsInterleave(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	studentRepo := repositories.NewStudentRepository(env.db)
	instructors := &racingInstructors{InstructorRepository: repositories.NewInstructorRepository(env.db)}
	auth := NewAuthService(studentRepo, instructors, env.issuer, validation.New(), nil)

	instructors.before = func() {
		in := studentInput("S900")
		in.Email = "dup@x.test"
		_, err := env.auth.RegisterStudent(ctx, in)
		require.NoError(t, err)
	}

	_, err := auth.RegisterInstructor(ctx, instructorInput(9, "dup@x.test", "0711000009"))
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)

	var students, staff int64
	require.NoError(t, env.db.Model(&models.Student{}).Count(&students).Error)
	require.NoError(t, env.db.Model(&models.Instructor{}).Count(&staff).Error)
	assert.EqualValues(t, 1, students)
	assert.Zero(t, staff)
}
