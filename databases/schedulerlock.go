package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schedulerLockName = "schedulerLocks"

// SchedulerLockDatabase contains the methods to use with the scheduler lock database
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, jobName, instanceID string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, jobName, instanceID string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db: db,
	}
}

// TryAcquireLock takes the named lock if it is free or expired. One atomic
// upsert decides the winner across instances; jobName carries a unique index
// (models.SchedulerLock) so two racing upserts cannot both insert.
func (c *schedulerLockDatabase) TryAcquireLock(ctx context.Context, jobName, instanceID string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"jobName":   jobName,
		"expiresAt": bson.M{"$lt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"instanceId": instanceID,
			"expiresAt":  now.Add(ttl),
			"acquiredAt": now,
		},
		"$setOnInsert": bson.M{"jobName": jobName},
	}
	res, err := c.db.Collection(schedulerLockName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// losing side of the upsert race against the unique jobName index;
		// another instance holds a live lock
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1 || res.UpsertedCount == 1, nil
}

// ReleaseLock frees the lock if this instance still holds it
func (c *schedulerLockDatabase) ReleaseLock(ctx context.Context, jobName, instanceID string) error {
	filter := bson.M{"jobName": jobName, "instanceId": instanceID}
	_, err := c.db.Collection(schedulerLockName).DeleteOne(ctx, filter)
	return err
}
