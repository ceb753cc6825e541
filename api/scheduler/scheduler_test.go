package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/healthspectrum/healthspectrum-api/databases/mocks"
	"github.com/healthspectrum/healthspectrum-api/models"
)

func TestReapStaleJobsFailsAbandonedRuns(t *testing.T) {
	jdb := mocks.NewProcessingJobDatabase(t)
	lockDB := mocks.NewSchedulerLockDatabase(t)

	stale := []models.ProcessingJob{
		{ID: primitive.NewObjectID(), Status: models.JobStatusProcessingOCR},
		{ID: primitive.NewObjectID(), Status: models.JobStatusPending},
	}

	lockDB.On("AcquireLock", mock.Anything, staleJobLockName, mock.AnythingOfType("string"), 10*time.Minute).Return(true, nil)
	lockDB.On("ReleaseLock", mock.Anything, staleJobLockName, mock.AnythingOfType("string")).Return(nil)
	jdb.On("FindStaleJobs", mock.Anything, mock.AnythingOfType("time.Time")).Return(stale, nil)
	jdb.On("TransitionStatus", mock.Anything, stale[0].ID, models.JobStatusProcessingOCR, models.JobStatusFailed, mock.Anything).Return(true, nil)
	jdb.On("TransitionStatus", mock.Anything, stale[1].ID, models.JobStatusPending, models.JobStatusFailed, mock.Anything).Return(true, nil)

	s := NewScheduler(jdb, lockDB)
	s.reapStaleJobs()
}

func TestReapStaleJobsSkipsWhenLockHeldElsewhere(t *testing.T) {
	jdb := mocks.NewProcessingJobDatabase(t)
	lockDB := mocks.NewSchedulerLockDatabase(t)

	lockDB.On("AcquireLock", mock.Anything, staleJobLockName, mock.AnythingOfType("string"), 10*time.Minute).Return(false, nil)

	s := NewScheduler(jdb, lockDB)
	s.reapStaleJobs()

	jdb.AssertNotCalled(t, "FindStaleJobs", mock.Anything, mock.Anything)
}
