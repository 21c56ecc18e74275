package databases

// go generate: mockery --name StreakStateDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildline/engage-api/models"
)

const streakStateName = "streakStates"

// StreakStateDatabase contains the methods to use with the streak state database
type StreakStateDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.StreakState, error)
	CompareAndSetProgress(ctx context.Context, communityID, userID string, streakType models.StreakType, prevLastActivity time.Time, current, highest int64, lastActivity time.Time) (bool, error)
	ClaimReward(ctx context.Context, communityID, userID string, streakType models.StreakType, threshold int64) (bool, error)
}

type streakStateDatabase struct {
	db DatabaseHelper
}

// NewStreakStateDatabase initializes a new instance of streak state database with the provided db connection
func NewStreakStateDatabase(db DatabaseHelper) StreakStateDatabase {
	return &streakStateDatabase{
		db: db,
	}
}

func (c *streakStateDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.StreakState, error) {
	state := &models.StreakState{}
	err := c.db.Collection(streakStateName).FindOne(ctx, filter, opts...).Decode(&state)
	if err != nil {
		return nil, err
	}
	return state, nil
}

// CompareAndSetProgress persists the new streak counters only if
// lastActivityAt still matches the value the caller read. A zero
// prevLastActivity means "no document yet" and upserts. False without error
// means another touch interleaved and won; the caller rereads instead of
// overwriting.
func (c *streakStateDatabase) CompareAndSetProgress(ctx context.Context, communityID, userID string, streakType models.StreakType, prevLastActivity time.Time, current, highest int64, lastActivity time.Time) (bool, error) {
	coll := c.db.Collection(streakStateName)

	if prevLastActivity.IsZero() {
		filter := bson.M{"communityId": communityID, "userId": userID, "streakType": streakType}
		update := bson.M{
			"$setOnInsert": bson.M{
				"communityId":    communityID,
				"userId":         userID,
				"streakType":     streakType,
				"currentStreak":  current,
				"highestStreak":  highest,
				"lastActivityAt": lastActivity,
			},
		}
		res, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
		if err != nil {
			return false, err
		}
		return res.UpsertedCount == 1, nil
	}

	filter := bson.M{
		"communityId":    communityID,
		"userId":         userID,
		"streakType":     streakType,
		"lastActivityAt": prevLastActivity,
	}
	update := bson.M{
		"$set": bson.M{
			"currentStreak":  current,
			"highestStreak":  highest,
			"lastActivityAt": lastActivity,
		},
	}
	res, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// ClaimReward inserts threshold into the completed reward set only if absent.
// Same claim-before-award discipline as milestone thresholds.
func (c *streakStateDatabase) ClaimReward(ctx context.Context, communityID, userID string, streakType models.StreakType, threshold int64) (bool, error) {
	filter := bson.M{
		"communityId":      communityID,
		"userId":           userID,
		"streakType":       streakType,
		"completedRewards": bson.M{"$ne": threshold},
	}
	update := bson.M{
		"$addToSet": bson.M{"completedRewards": threshold},
	}
	res, err := c.db.Collection(streakStateName).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
