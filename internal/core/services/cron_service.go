package services

import (
	"context"
	"log"
	"time"

	"attendtrack/internal/core/domain"
	"attendtrack/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultStatsSchedule refreshes the stats gauges every five minutes
const DefaultStatsSchedule = "@every 5m"

// CronService runs the periodic stats job that feeds the Prometheus gauges
type CronService struct {
	cron      *cron.Cron
	schedule  string
	dashboard *DashboardService
	metrics   *metrics.Metrics
}

// NewCronService creates a new cron service. An empty schedule uses
// DefaultStatsSchedule.
func NewCronService(schedule string, dashboard *DashboardService, m *metrics.Metrics) *CronService {
	if schedule == "" {
		schedule = DefaultStatsSchedule
	}
	return &CronService{
		cron:      cron.New(),
		schedule:  schedule,
		dashboard: dashboard,
		metrics:   m,
	}
}

// Start registers the stats job, runs it once and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runStats); err != nil {
		return err
	}
	s.runStats()
	s.cron.Start()
	log.Printf("🚀 CronService started (stats: %s)", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runStats() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.RefreshStats(ctx); err != nil {
		log.Printf("❌ Stats job error: %v", err)
	}
}

// RefreshStats publishes the dashboard counts as gauges
func (s *CronService) RefreshStats(ctx context.Context) error {
	data, err := s.dashboard.GetSummary(ctx)
	if err != nil {
		return err
	}

	s.metrics.SetIdentities(string(domain.RoleStudent), data.TotalStudents)
	s.metrics.SetIdentities(string(domain.RoleInstructor), data.TotalInstructors)
	s.metrics.SetIdentities(string(domain.RoleAdmin), data.TotalAdmins)
	for status, n := range data.RecordsByStatus {
		s.metrics.SetRecords(status, n)
	}
	return nil
}
