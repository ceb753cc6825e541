// Package scheduler runs the periodic background jobs: reaping analysis runs
// that were abandoned mid-flight.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/healthspectrum/healthspectrum-api/databases"
	"github.com/healthspectrum/healthspectrum-api/models"
)

// staleJobAge is how long a job may sit in a non-terminal status before the
// reaper fails it. Vendor calls finish in minutes; two hours means the
// process that owned the run is gone.
const staleJobAge = 2 * time.Hour

const staleJobLockName = "stale_job_reaper"

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron       *cron.Cron
	JobDB      databases.ProcessingJobDatabase
	LockDB     databases.SchedulerLockDatabase
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(jobDB databases.ProcessingJobDatabase, lockDB databases.SchedulerLockDatabase) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		JobDB:      jobDB,
		LockDB:     lockDB,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Reap stale analysis runs every 15 minutes
	_, err := s.cron.AddFunc("*/15 * * * *", s.reapStaleJobs)
	if err != nil {
		zap.S().Errorw("failed to register stale job reaper", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Background scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Background scheduler stopped")
}

// reapStaleJobs fails every non-terminal job that has not been touched for
// staleJobAge, so clients polling a dead run see failed instead of a status
// frozen forever.
func (s *Scheduler) reapStaleJobs() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.AcquireLock(ctx, staleJobLockName, s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for stale job reaper", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Stale job reaper already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, staleJobLockName, s.instanceID)

	zap.S().Infow("Running stale job reaper", "instance", s.instanceID)

	stale, err := s.JobDB.FindStaleJobs(ctx, time.Now().Add(-staleJobAge))
	if err != nil {
		zap.S().Errorw("failed to find stale jobs", "error", err)
		return
	}

	reaped := 0
	for _, job := range stale {
		ok, err := s.JobDB.TransitionStatus(ctx, job.ID, job.Status, models.JobStatusFailed,
			bson.M{"errorLog": fmt.Sprintf("analysis run abandoned in %s for over %s", job.Status, staleJobAge)})
		if err != nil {
			zap.S().Errorw("failed to reap stale job", "jobId", job.ID.Hex(), "error", err)
			continue
		}
		if ok {
			reaped++
		}
	}

	if len(stale) > 0 {
		zap.S().Infow("Stale job reaper finished", "found", len(stale), "reaped", reaped)
	}
}
