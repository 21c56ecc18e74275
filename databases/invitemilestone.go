package databases

// go generate: mockery --name InviteMilestoneDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildline/engage-api/models"
)

const inviteMilestoneName = "inviteMilestones"

// InviteMilestoneDatabase contains the methods to use with the invite milestone database
type InviteMilestoneDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InviteMilestoneRecord, error)
	Claim(ctx context.Context, communityID, userID string, threshold int64) (bool, error)
}

type inviteMilestoneDatabase struct {
	db DatabaseHelper
}

// NewInviteMilestoneDatabase initializes a new instance of invite milestone database with the provided db connection
func NewInviteMilestoneDatabase(db DatabaseHelper) InviteMilestoneDatabase {
	return &inviteMilestoneDatabase{
		db: db,
	}
}

func (c *inviteMilestoneDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InviteMilestoneRecord, error) {
	var records []models.InviteMilestoneRecord
	cur := c.db.Collection(inviteMilestoneName).Find(ctx, filter, opts...)
	err := cur.Decode(&records)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Claim records the threshold for the user with insert-if-absent semantics,
// one row per threshold ever awarded. True means this call created the row
// and the ladder bonus is owed.
func (c *inviteMilestoneDatabase) Claim(ctx context.Context, communityID, userID string, threshold int64) (bool, error) {
	filter := bson.M{
		"communityId": communityID,
		"userId":      userID,
		"threshold":   threshold,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"communityId": communityID,
			"userId":      userID,
			"threshold":   threshold,
			"timestamp":   time.Now().UTC(),
		},
	}
	res, err := c.db.Collection(inviteMilestoneName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}
