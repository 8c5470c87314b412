package handlers

import (
	"context"
	"time"

	"attendtrack/internal/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Pinger is anything with a reachability check (the Redis storage)
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	redis Pinger
}

// NewHealthHandler creates a new health handler. redis may be nil.
func NewHealthHandler(db *gorm.DB, cfg *config.Config, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, cfg: cfg, redis: redis}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 Attendance Tracker API is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, database and Redis health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	checks := fiber.Map{"api": "healthy"}

	checks["database"] = "healthy"
	if err := config.HealthCheck(ctx, h.db); err != nil {
		checks["database"] = "unhealthy"
		status = fiber.StatusServiceUnavailable
	}

	if h.redis != nil {
		checks["redis"] = "healthy"
		if err := h.redis.Ping(ctx); err != nil {
			checks["redis"] = "unhealthy"
			status = fiber.StatusServiceUnavailable
		}
	} else {
		checks["redis"] = "disabled"
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": checks,
	})
}
