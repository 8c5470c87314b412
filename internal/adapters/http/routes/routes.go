package routes

import (
	"time"

	"attendtrack/internal/adapters/cache"
	"attendtrack/internal/adapters/http/handlers"
	"attendtrack/internal/adapters/http/middleware"
	"attendtrack/internal/adapters/persistence/repositories"
	"attendtrack/internal/config"
	"attendtrack/internal/core/services"
	"attendtrack/internal/pkg/jwt"
	"attendtrack/internal/pkg/metrics"
	"attendtrack/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Infra carries the process-wide collaborators built in main. Metrics and
// Redis may be nil.
type Infra struct {
	Issuer  *jwt.Issuer
	Metrics *metrics.Metrics
	Redis   *cache.RedisStorage
}

// Storage returns the limiter storage, or nil for in-memory counters
func (i Infra) Storage() fiber.Storage {
	if i.Redis == nil {
		return nil
	}
	return i.Redis
}

// Setup configures all routes for the application. It returns the dashboard
// service so the stats job shares the same repositories.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, infra Infra) *services.DashboardService {
	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	instructorRepo := repositories.NewInstructorRepository(db)
	courseRepo := repositories.NewCourseRepository(db)
	sessionRepo := repositories.NewClassSessionRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	embeddingRepo := repositories.NewEmbeddingRepository(db)

	// Initialize services
	validator := validation.New()
	guard := services.NewGuard(infra.Issuer)
	authService := services.NewAuthService(studentRepo, instructorRepo, infra.Issuer, validator, infra.Metrics)
	attendanceService := services.NewAttendanceService(attendanceRepo, studentRepo, sessionRepo, validator, infra.Metrics)
	classService := services.NewClassService(courseRepo, sessionRepo, instructorRepo, validator)
	embeddingService := services.NewEmbeddingService(embeddingRepo, studentRepo, validator)
	dashboardService := services.NewDashboardService(studentRepo, instructorRepo, attendanceRepo)

	// Initialize handlers
	var redisPinger handlers.Pinger
	if infra.Redis != nil {
		redisPinger = infra.Redis
	}
	healthHandler := handlers.NewHealthHandler(db, cfg, redisPinger)
	authHandler := handlers.NewAuthHandler(authService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	classHandler := handlers.NewClassHandler(classService)
	embeddingHandler := handlers.NewEmbeddingHandler(embeddingService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Prometheus
	if infra.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(infra.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	auth := middleware.AuthMiddleware(guard)
	authLimiter := middleware.AuthRateLimiter(cfg, infra.Storage())

	setupAuthRoutes(app, authHandler, auth, authLimiter)
	setupAttendanceRoutes(app, attendanceHandler, auth, guard)
	setupClassRoutes(app, classHandler, auth, guard)

	// Students
	app.Post("/students/me/embeddings", auth, middleware.StudentOnly(guard), embeddingHandler.Store)

	// Dashboard (Admin only)
	app.Get("/dashboard/admin", auth, middleware.AdminOnly(guard), middleware.NoCacheHeaders(), dashboardHandler.GetAdminDashboard)

	return dashboardService
}

// setupAuthRoutes configures registration and token routes
func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler, auth, limiter fiber.Handler) {
	// Public routes with strict rate limiting
	router.Post("/register/student", limiter, h.RegisterStudent)
	router.Post("/register/instructor", limiter, h.RegisterInstructor)
	router.Post("/token", limiter, middleware.NoCacheHeaders(), h.Token)
	router.Post("/login", limiter, middleware.NoCacheHeaders(), h.Token)

	// Protected
	router.Get("/me", auth, middleware.NoCacheHeaders(), h.Me)
}

// setupAttendanceRoutes configures attendance routes
func setupAttendanceRoutes(router fiber.Router, h *handlers.AttendanceHandler, auth fiber.Handler, guard services.Authenticator) {
	noCache := middleware.NoCacheHeaders()

	// Any authenticated caller; the service pins students to themselves
	router.Post("/mark-attendance", auth, noCache, h.Mark)

	// Student
	router.Get("/me/attendance", auth, middleware.StudentOnly(guard), noCache, h.Mine)

	// Instructor/Admin
	router.Get("/attendance", auth, middleware.InstructorOrAdmin(guard), noCache, h.List)
	router.Get("/attendance/:student_id", auth, middleware.InstructorOrAdmin(guard), noCache, h.ListByStudent)
}

// setupClassRoutes configures course and session routes
func setupClassRoutes(router fiber.Router, h *handlers.ClassHandler, auth fiber.Handler, guard services.Authenticator) {
	cacheHeaders := middleware.PrivateCacheHeaders(time.Minute)

	router.Get("/courses", auth, cacheHeaders, h.ListCourses)
	router.Post("/courses", auth, middleware.InstructorOrAdmin(guard), h.CreateCourse)

	router.Get("/sessions", auth, cacheHeaders, h.ListSessions)
	router.Get("/sessions/:id", auth, cacheHeaders, h.GetSession)
	router.Post("/sessions", auth, middleware.InstructorOrAdmin(guard), h.CreateSession)
}
