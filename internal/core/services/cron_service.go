package services

import (
	"context"
	"log"
	"time"

	"hostelhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// dueReminderWindowDays is how far ahead the reminder job looks
const dueReminderWindowDays = 3

// CronService schedules the daily maintenance jobs
type CronService struct {
	cron                *cron.Cron
	feeService          *FeeService
	announcementService *AnnouncementService
	refreshTokenRepo    repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(
	feeService *FeeService,
	announcementService *AnnouncementService,
	refreshTokenRepo repositories.RefreshTokenRepository,
) *CronService {
	return &CronService{
		cron:                cron.New(),
		feeService:          feeService,
		announcementService: announcementService,
		refreshTokenRepo:    refreshTokenRepo,
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// Daily sweep at 08:30
	s.cron.AddFunc("30 8 * * *", s.runDailySweep)

	// Expired refresh tokens are purged nightly
	s.cron.AddFunc("0 3 * * *", s.purgeExpiredTokens)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop halts the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// runDailySweep flips overdue fees, expires stale announcements and
// sends due reminders.
func (s *CronService) runDailySweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("🚀 Daily sweep started")

	if n, err := s.feeService.SweepOverdue(ctx); err != nil {
		log.Printf("❌ Overdue fee sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("✅ Marked %d fees overdue", n)
	}

	if n, err := s.announcementService.SweepExpired(ctx); err != nil {
		log.Printf("❌ Announcement expiry sweep failed: %v", err)
	} else if n > 0 {
		log.Printf("✅ Expired %d announcements", n)
	}

	if n, err := s.feeService.SendDueReminders(ctx, dueReminderWindowDays); err != nil {
		log.Printf("❌ Due reminder dispatch failed: %v", err)
	} else if n > 0 {
		log.Printf("✅ Sent %d fee reminders", n)
	}

	log.Println("✅ Daily sweep completed")
}

// purgeExpiredTokens deletes refresh tokens past their expiry
func (s *CronService) purgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Refresh token purge failed: %v", err)
		return
	}
	log.Println("✅ Expired refresh tokens purged")
}
