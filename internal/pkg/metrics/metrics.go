package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the collectors exported on /metrics
type Metrics struct {
	Registry *prometheus.Registry

	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	logins          *prometheus.CounterVec
	registrations   *prometheus.CounterVec
	attendanceMarks *prometheus.CounterVec
	identities      *prometheus.GaugeVec
	records         *prometheus.GaugeVec
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendtrack_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attendtrack_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendtrack_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendtrack_registrations_total",
			Help: "Successful registrations by role.",
		}, []string{"role"}),
		attendanceMarks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "attendtrack_attendance_marks_total",
			Help: "Attendance mark attempts by outcome.",
		}, []string{"outcome"}),
		identities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendtrack_identities",
			Help: "Registered identities by role, refreshed by the stats job.",
		}, []string{"role"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "attendtrack_attendance_records",
			Help: "Stored attendance records by status, refreshed by the stats job.",
		}, []string{"status"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.logins, m.registrations, m.attendanceMarks,
		m.identities, m.records,
	)
	return m
}

// Middleware records request count and latency per matched route
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		m.requests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// LoginAttempt counts a login by outcome ("success", "invalid_credentials", "error")
func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// Registered counts a new identity
func (m *Metrics) Registered(role string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(role).Inc()
}

// AttendanceMarked counts a mark attempt by outcome ("created", "conflict", "rejected", "error")
func (m *Metrics) AttendanceMarked(outcome string) {
	if m == nil {
		return
	}
	m.attendanceMarks.WithLabelValues(outcome).Inc()
}

// SetIdentities publishes the number of identities for a role
func (m *Metrics) SetIdentities(role string, n int64) {
	if m == nil {
		return
	}
	m.identities.WithLabelValues(role).Set(float64(n))
}

// SetRecords publishes the number of attendance records for a status
func (m *Metrics) SetRecords(status string, n int64) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(status).Set(float64(n))
}
