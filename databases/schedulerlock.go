package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healthspectrum/healthspectrum-api/models"
)

const schedulerLockCollectionName = "schedulerlocks"

// SchedulerLockDatabase hands out short-lived leases so scheduled jobs run
// on exactly one instance.
type SchedulerLockDatabase interface {
	AcquireLock(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, instanceID string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{db: db}
}

// AcquireLock upserts the lock document when it is absent or expired. A
// false return means another instance holds the lease.
func (s *schedulerLockDatabase) AcquireLock(ctx context.Context, name, instanceID string, ttl time.Duration) (bool, error) {
	now := time.Now()
	lock := models.SchedulerLock{
		Name:       name,
		InstanceID: instanceID,
		ExpiresAt:  now.Add(ttl),
	}

	filter := bson.M{
		"_id":       name,
		"expiresAt": bson.M{"$lt": now},
	}

	_, err := s.db.Collection(schedulerLockCollectionName).ReplaceOne(ctx, filter, lock, options.Replace().SetUpsert(true))
	if err != nil {
		// a duplicate key error means a live lock document exists
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, name, instanceID string) error {
	return s.db.Collection(schedulerLockCollectionName).DeleteOne(ctx, bson.M{"_id": name, "instanceId": instanceID})
}
