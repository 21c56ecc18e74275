package databases

// go generate: mockery --name MilestoneProgressDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildline/engage-api/models"
)

const milestoneProgressName = "milestoneProgress"

// MilestoneProgressDatabase contains the methods to use with the milestone progress database
type MilestoneProgressDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MilestoneProgress, error)
	AddMinutes(ctx context.Context, communityID, userID string, category models.ActivityCategory, deltaMinutes int64) (*models.MilestoneProgress, error)
	ClaimThreshold(ctx context.Context, communityID, userID string, category models.ActivityCategory, threshold int64) (bool, error)
}

type milestoneProgressDatabase struct {
	db DatabaseHelper
}

// NewMilestoneProgressDatabase initializes a new instance of milestone progress database with the provided db connection
func NewMilestoneProgressDatabase(db DatabaseHelper) MilestoneProgressDatabase {
	return &milestoneProgressDatabase{
		db: db,
	}
}

func (c *milestoneProgressDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.MilestoneProgress, error) {
	progress := &models.MilestoneProgress{}
	err := c.db.Collection(milestoneProgressName).FindOne(ctx, filter, opts...).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// AddMinutes atomically accumulates session minutes for the category,
// creating the progress document on first use, and returns the updated
// document so thresholds can be evaluated against the new cumulative total.
func (c *milestoneProgressDatabase) AddMinutes(ctx context.Context, communityID, userID string, category models.ActivityCategory, deltaMinutes int64) (*models.MilestoneProgress, error) {
	filter := bson.M{"communityId": communityID, "userId": userID, "category": category}
	update := bson.M{
		"$inc":         bson.M{"cumulativeMinutes": deltaMinutes},
		"$set":         bson.M{"updatedAt": time.Now().UTC()},
		"$setOnInsert": bson.M{"communityId": communityID, "userId": userID, "category": category},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	progress := &models.MilestoneProgress{}
	err := c.db.Collection(milestoneProgressName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&progress)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// ClaimThreshold inserts threshold into the completed set only if it is not
// already present. True means this caller won the claim and owes the award;
// false means another delivery already claimed it. The guard filter and
// $addToSet run as one atomic update, which is what makes retries after a
// crash safe.
func (c *milestoneProgressDatabase) ClaimThreshold(ctx context.Context, communityID, userID string, category models.ActivityCategory, threshold int64) (bool, error) {
	filter := bson.M{
		"communityId":         communityID,
		"userId":              userID,
		"category":            category,
		"completedMilestones": bson.M{"$ne": threshold},
	}
	update := bson.M{
		"$addToSet": bson.M{"completedMilestones": threshold},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := c.db.Collection(milestoneProgressName).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}
