package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/vinocave/vinocave-backend/internal/app/service"
	"github.com/vinocave/vinocave-backend/pkg/logger"
)

// SnapshotScheduler records every cellar's bottle count and value once
// a day, feeding the value-over-time statistic
type SnapshotScheduler struct {
	cron         *cron.Cron
	statsService service.StatsService
}

func NewSnapshotScheduler(statsService service.StatsService) *SnapshotScheduler {
	return &SnapshotScheduler{
		cron:         cron.New(),
		statsService: statsService,
	}
}

// Start schedules the daily snapshot run
func (s *SnapshotScheduler) Start() error {
	// Daily at 03:00, after the day's activity has settled
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled cellar snapshot run", nil)

		if err := s.statsService.SnapshotAllCellars(); err != nil {
			logger.Error("Scheduled cellar snapshot run failed", err)
			return
		}

		logger.Info("Scheduled cellar snapshot run completed", nil)
	})
	if err != nil {
		logger.Error("Failed to add cron job for cellar snapshots", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cellar snapshot scheduler started (daily at 3:00 AM)", nil)

	return nil
}

// Stop stops the scheduler
func (s *SnapshotScheduler) Stop() {
	logger.Info("Stopping cellar snapshot scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cellar snapshot scheduler stopped", nil)
}
