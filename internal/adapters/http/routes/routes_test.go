package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"attendtrack/internal/adapters/http/middleware"
	"attendtrack/internal/adapters/persistence/testdb"
	"attendtrack/internal/config"
	"attendtrack/internal/pkg/jwt"
	"attendtrack/internal/pkg/metrics"
	"attendtrack/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	password.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{
		AppMode:   "prod",
		RateLimit: config.RateLimitConfig{PerMinute: 1000, AuthPerMinute: 1000},
	}
	issuer, err := jwt.NewIssuer("routes-test-secret", "attendtrack-test", 30*time.Minute)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	infra := Infra{Issuer: issuer, Metrics: metrics.New()}
	middleware.Setup(app, cfg, infra.Storage(), infra.Metrics)
	db := testdb.Open(t)
	Setup(app, db, cfg, infra)
	return app, db
}

type envelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
	Data    json.RawMessage   `json:"data"`
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return env
}

func formToken(t *testing.T, app *fiber.App, username, pw string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {pw}}
	req := httptest.NewRequest(fiber.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, 1800, tok.ExpiresIn)
	assert.Equal(t, "no-store, no-cache, must-revalidate", resp.Header.Get(fiber.HeaderCacheControl))
	return tok.AccessToken
}

// seedSession registers instructor 7, creates a course and a session and
// returns the instructor token and session id
func seedSession(t *testing.T, app *fiber.App) (string, uint) {
	t.Helper()

	resp, raw := call(t, app, fiber.MethodPost, "/register/instructor", "", map[string]interface{}{
		"staff_id": 7, "first_name": "Grace", "last_name": "Hopper",
		"email": "grace@staff.test", "phone_number": "0711000007", "password": "teach123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = call(t, app, fiber.MethodPost, "/token", "", map[string]string{"username": "grace@staff.test", "password": "teach123"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(raw, &tok))

	resp, raw = call(t, app, fiber.MethodPost, "/courses", tok.AccessToken, map[string]string{"course_code": "CS101", "course_name": "Intro"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var course struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &course))

	resp, raw = call(t, app, fiber.MethodPost, "/sessions", tok.AccessToken, map[string]interface{}{
		"course_id": course.ID, "venue": "LT1",
		"start_time": "2026-03-02T09:00:00Z", "end_time": "2026-03-02T11:00:00Z",
		"days": []string{"Mon"},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var session struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &session))
	return tok.AccessToken, session.ID
}

func TestStudentAttendanceFlow(t *testing.T) {
	app, _ := newTestApp(t)
	instructorToken, sessionID := seedSession(t, app)

	// register S100 / pw123
	resp, raw := call(t, app, fiber.MethodPost, "/register/student", "", map[string]string{
		"regno": "S100", "first_name": "Ann", "last_name": "Otieno",
		"email": "ann@students.test", "password": "pw123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	// duplicate registration
	resp, _ = call(t, app, fiber.MethodPost, "/register/student", "", map[string]string{
		"regno": "S100", "first_name": "Ann", "last_name": "Otieno",
		"email": "ann2@students.test", "password": "pw123",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	studentToken := formToken(t, app, "S100", "pw123")

	resp, raw = call(t, app, fiber.MethodGet, "/me", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me struct {
		Subject string `json:"subject"`
		Role    string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &me))
	assert.Equal(t, "S100", me.Subject)
	assert.Equal(t, "student", me.Role)

	// mark once
	mark := map[string]interface{}{"session_id": sessionID, "status": "Present"}
	resp, raw = call(t, app, fiber.MethodPost, "/mark-attendance", studentToken, mark)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))
	var record struct {
		Student string `json:"student"`
		Session uint   `json:"session"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &record))
	assert.Equal(t, "S100", record.Student)
	assert.Equal(t, sessionID, record.Session)
	assert.Equal(t, "Present", record.Status)

	// mark again
	resp, raw = call(t, app, fiber.MethodPost, "/mark-attendance", studentToken, mark)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.False(t, decode(t, raw).Success)

	// role gating on the full listing
	resp, _ = call(t, app, fiber.MethodGet, "/attendance", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, raw = call(t, app, fiber.MethodGet, "/attendance?status=present", instructorToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	var page struct {
		Data []struct {
			Student string `json:"student"`
		} `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &page))
	assert.EqualValues(t, 1, page.Meta.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "S100", page.Data[0].Student)

	resp, _ = call(t, app, fiber.MethodGet, "/attendance/S100", instructorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, fiber.MethodGet, "/attendance/S999", instructorToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, fiber.MethodGet, "/me/attendance", studentToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, fiber.MethodGet, "/me/attendance", instructorToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAuthFailures(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := call(t, app, fiber.MethodGet, "/attendance", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	assert.Equal(t, "access token required", decode(t, raw).Error)

	resp, _ = call(t, app, fiber.MethodGet, "/me", "garbage", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, raw = call(t, app, fiber.MethodPost, "/token", "", map[string]string{"username": "S404", "password": "whatever"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid credentials", decode(t, raw).Error)

	resp, raw = call(t, app, fiber.MethodPost, "/token", "", map[string]string{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, raw).Fields, "username")

	resp, raw = call(t, app, fiber.MethodPost, "/register/student", "", map[string]string{"regno": "S1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, raw).Fields, "email")
}

func TestOperationalEndpoints(t *testing.T) {
	app, _ := newTestApp(t)

	resp, raw := call(t, app, fiber.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `"database":"healthy"`)
	assert.Contains(t, string(raw), `"redis":"disabled"`)

	resp, _ = call(t, app, fiber.MethodGet, "/", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, raw = call(t, app, fiber.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "attendtrack_http_requests_total")
}

func TestAdminDashboard(t *testing.T) {
	app, db := newTestApp(t)
	admin := config.AdminConfig{Email: "root@example.com", Password: "changeme", StaffID: 1}
	require.NoError(t, config.NewSeeder(db, admin).Run(context.Background()))

	instructorToken, sessionID := seedSession(t, app)
	resp, raw := call(t, app, fiber.MethodPost, "/register/student", "", map[string]string{
		"regno": "S100", "first_name": "Ann", "last_name": "Otieno",
		"email": "ann@students.test", "password": "pw123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	// staff may mark on a student's behalf
	resp, raw = call(t, app, fiber.MethodPost, "/mark-attendance", instructorToken, map[string]interface{}{
		"session_id": sessionID, "student_id": "S100", "status": "late",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	resp, _ = call(t, app, fiber.MethodGet, "/dashboard/admin", instructorToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	adminToken := formToken(t, app, "root@example.com", "changeme")
	resp, raw = call(t, app, fiber.MethodGet, "/dashboard/admin", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	var summary struct {
		TotalStudents    int64            `json:"total_students"`
		TotalInstructors int64            `json:"total_instructors"`
		TotalAdmins      int64            `json:"total_admins"`
		TotalRecords     int64            `json:"total_records"`
		RecordsByStatus  map[string]int64 `json:"records_by_status"`
	}
	require.NoError(t, json.Unmarshal(decode(t, raw).Data, &summary))
	assert.EqualValues(t, 1, summary.TotalStudents)
	assert.EqualValues(t, 1, summary.TotalInstructors)
	assert.EqualValues(t, 1, summary.TotalAdmins)
	assert.EqualValues(t, 1, summary.TotalRecords)
	assert.EqualValues(t, 1, summary.RecordsByStatus["Late"])
}

func TestSetupReturnsSharedDashboardService(t *testing.T) {
	cfg := &config.Config{
		AppMode:   "prod",
		RateLimit: config.RateLimitConfig{PerMinute: 1000, AuthPerMinute: 1000},
	}
	issuer, err := jwt.NewIssuer("routes-test-secret", "attendtrack-test", 30*time.Minute)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	dashboard := Setup(app, testdb.Open(t), cfg, Infra{Issuer: issuer})
	require.NotNil(t, dashboard)

	resp, raw := call(t, app, fiber.MethodPost, "/register/student", "", map[string]string{
		"regno": "S100", "first_name": "Ann", "last_name": "Otieno",
		"email": "ann@students.test", "password": "pw123",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	summary, err := dashboard.GetSummary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.TotalStudents)
}
