package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"attendtrack/internal/adapters/persistence/models"
	"attendtrack/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterInstructor(ctx, instructorInput(7, "grace@staff.test", "0711000007"))
	require.NoError(t, err)

	course, err := env.classes.CreateCourse(ctx, asInstructor("7"), &CreateCourseInput{CourseCode: " cs101 ", CourseName: "Intro"})
	require.NoError(t, err)
	assert.Equal(t, "CS101", course.CourseCode)
	assert.EqualValues(t, 7, course.StaffID)

	_, err = env.classes.CreateCourse(ctx, asInstructor("7"), &CreateCourseInput{CourseCode: "CS101", CourseName: "Again"})
	assert.ErrorIs(t, err, domain.ErrCourseCodeTaken)

	_, err = env.classes.CreateCourse(ctx, asStudent("S100"), &CreateCourseInput{CourseCode: "CS102", CourseName: "Nope"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.classes.CreateCourse(ctx, asInstructor("99"), &CreateCourseInput{CourseCode: "CS103", CourseName: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrInstructorNotFound)

	list, err := env.classes.ListCourses(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Meta.Total)
}

func TestAdminAssignsCourseOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterInstructor(ctx, instructorInput(7, "grace@staff.test", "0711000007"))
	require.NoError(t, err)

	admin := domain.Principal{Subject: "1", Role: domain.RoleAdmin}
	course, err := env.classes.CreateCourse(ctx, admin, &CreateCourseInput{CourseCode: "MA201", CourseName: "Algebra", StaffID: 7})
	require.NoError(t, err)
	assert.EqualValues(t, 7, course.StaffID)

	// instructors cannot hand a course to someone else
	_, err = env.auth.RegisterInstructor(ctx, instructorInput(8, "alan@staff.test", "0711000008"))
	require.NoError(t, err)
	course, err = env.classes.CreateCourse(ctx, asInstructor("8"), &CreateCourseInput{CourseCode: "MA202", CourseName: "Calculus", StaffID: 7})
	require.NoError(t, err)
	assert.EqualValues(t, 8, course.StaffID)
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.seedSession(t)

	got, err := env.classes.GetSession(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "CS101", got.CourseCode)
	assert.Equal(t, []string{"Mon", "Wed"}, got.Days)
	assert.EqualValues(t, 7, got.StaffID)

	start := time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)
	_, err = env.classes.CreateSession(ctx, asInstructor("7"), &CreateSessionInput{
		CourseID:  got.CourseID,
		StartTime: start,
		EndTime:   start.Add(-time.Hour),
	})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "end_time")

	_, err = env.classes.CreateSession(ctx, asInstructor("7"), &CreateSessionInput{
		CourseID:  got.CourseID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Days:      []string{"Funday"},
	})
	require.True(t, errors.As(err, &verr))

	_, err = env.classes.CreateSession(ctx, asInstructor("7"), &CreateSessionInput{
		CourseID:  got.CourseID + 50,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)

	_, err = env.classes.GetSession(ctx, sessionID+50)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	list, err := env.classes.ListSessions(ctx, got.CourseID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Meta.Total)
	assert.Len(t, list.Data.([]*models.ClassSessionResponse), 1)
}

func TestCreateSessionRequiresCourseOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sessionID := env.seedSession(t)
	got, err := env.classes.GetSession(ctx, sessionID)
	require.NoError(t, err)

	_, err = env.auth.RegisterInstructor(ctx, instructorInput(8, "alan@staff.test", "0711000008"))
	require.NoError(t, err)

	start := time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)
	input := &CreateSessionInput{CourseID: got.CourseID, StartTime: start, EndTime: start.Add(time.Hour)}

	_, err = env.classes.CreateSession(ctx, asInstructor("8"), input)
	assert.ErrorIs(t, err, domain.ErrNotCourseOwner)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	admin := domain.Principal{Subject: "1", Role: domain.RoleAdmin}
	input.StaffID = 8
	session, err := env.classes.CreateSession(ctx, admin, input)
	require.NoError(t, err)
	assert.EqualValues(t, 8, session.StaffID)

	list, err := env.classes.ListSessions(ctx, got.CourseID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.Meta.Total)
}

func TestStoreEmbedding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.auth.RegisterStudent(ctx, studentInput("S100"))
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		res, err := env.embeddings.Store(ctx, asStudent("S100"), &StoreEmbeddingInput{Embedding: "0.12,0.55,0.91"})
		require.NoError(t, err)
		assert.Equal(t, "S100", res.Student)
		assert.EqualValues(t, i, res.Count)
	}

	_, err = env.embeddings.Store(ctx, asInstructor("7"), &StoreEmbeddingInput{Embedding: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.embeddings.Store(ctx, asStudent("S100"), &StoreEmbeddingInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
