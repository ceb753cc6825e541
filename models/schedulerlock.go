package models

import (
	"time"
)

// SchedulerLock is a mongo-backed lease that keeps multi-instance
// deployments from running the same background job twice.
type SchedulerLock struct {
	Name       string    `json:"name" bson:"_id"`
	InstanceID string    `json:"instanceId" bson:"instanceId"`
	ExpiresAt  time.Time `json:"expiresAt" bson:"expiresAt"`
}
