package services

import (
	"context"
	"log"
	"time"

	"gensuite-api/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// Retention windows for the nightly maintenance job
const (
	securityEventRetention = 90 * 24 * time.Hour
	ipRecordRetention      = 180 * 24 * time.Hour
)

// CronService runs scheduled maintenance: pruning aged security events and
// stale IP history. It never mutates account status — the credential store
// stays authoritative for lifecycle state.
type CronService struct {
	events repositories.SecurityEventRepository
	ips    repositories.IPRecordRepository
	cron   *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(events repositories.SecurityEventRepository, ips repositories.IPRecordRepository) *CronService {
	return &CronService{
		events: events,
		ips:    ips,
		cron:   cron.New(),
	}
}

// Start schedules and launches the maintenance jobs
func (s *CronService) Start() {
	// Nightly prune at 03:00
	if _, err := s.cron.AddFunc("0 3 * * *", s.prune); err != nil {
		log.Printf("❌ Failed to schedule prune job: %v", err)
		return
	}

	s.cron.Start()
	log.Println("🚀 CronService started (nightly prune at 03:00)")
}

// Stop stops the cron scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()

	if n, err := s.events.DeleteOlderThan(ctx, now.Add(-securityEventRetention)); err != nil {
		log.Printf("⚠️ Security event prune failed: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Pruned %d security events", n)
	}

	if n, err := s.ips.DeleteOlderThan(ctx, now.Add(-ipRecordRetention)); err != nil {
		log.Printf("⚠️ IP record prune failed: %v", err)
	} else if n > 0 {
		log.Printf("🧹 Pruned %d IP records", n)
	}
}
