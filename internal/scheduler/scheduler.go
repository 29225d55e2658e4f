// Package scheduler runs generation on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/parlay-engine/internal/parlay"
	"github.com/yourusername/parlay-engine/internal/service"
)

// Scheduler manages scheduled generation runs
type Scheduler struct {
	cron       *cron.Cron
	generation *service.GenerationService
	logger     *logrus.Logger
	runTimeout time.Duration

	mu        sync.Mutex
	isRunning bool
	jobActive bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler around the generation service
func NewScheduler(generation *service.GenerationService, runTimeout time.Duration, logger *logrus.Logger) *Scheduler {
	if runTimeout <= 0 {
		runTimeout = 2 * time.Minute
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		generation: generation,
		logger:     logger,
		runTimeout: runTimeout,
		jobIDs:     make([]cron.EntryID, 0),
	}
}

// ScheduleGeneration registers a generation job. A tick is skipped when the
// previous run is still in flight.
func (s *Scheduler) ScheduleGeneration(cronExpression string, cfg parlay.GenerationConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		if !s.beginJob() {
			s.logger.Warn("Skipping scheduled generation: previous run still in flight")
			return
		}
		defer s.endJob()

		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()

		combos, err := s.generation.GenerateFresh(ctx, cfg)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled generation failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"parlays":     len(combos),
			"parlay_type": cfg.ParlayType,
		}).Info("Scheduled generation completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled generation job")

	return nil
}

// retentionCron runs the persistence cleanup once a day, off the hour so it
// never coincides with a generation tick.
const retentionCron = "10 4 * * *"

// ScheduleRetention registers a daily job that prunes persisted parlays older
// than the retention window.
func (s *Scheduler) ScheduleRetention(retentionDays int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()

		deleted, err := s.generation.PruneExpired(ctx, retentionDays)
		if err != nil {
			s.logger.WithError(err).Error("Scheduled retention cleanup failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"deleted":        deleted,
			"retention_days": retentionDays,
		}).Info("Retention cleanup completed")
	}

	entryID, err := s.cron.AddFunc(retentionCron, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("retention_days", retentionDays).Info("Scheduled retention job")

	return nil
}

// Start begins executing scheduled jobs
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop halts job execution and waits for an in-flight run to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	s.mu.Unlock()

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) beginJob() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobActive {
		return false
	}
	s.jobActive = true
	return true
}

func (s *Scheduler) endJob() {
	s.mu.Lock()
	s.jobActive = false
	s.mu.Unlock()
}
