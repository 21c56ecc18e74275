package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SchedulerLock represents the structure of a scheduler lock document in
// MongoDB, used so only one instance runs a given background job at a time.
type SchedulerLock struct {
	ID         primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	JobName    string             `json:"jobName" bson:"jobName" index:"unique"`
	InstanceID string             `json:"instanceId" bson:"instanceId"`
	ExpiresAt  time.Time          `json:"expiresAt" bson:"expiresAt"`
	AcquiredAt time.Time          `json:"acquiredAt" bson:"acquiredAt"`
}
