package databases

// go generate: mockery --name InviteCreditDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildline/engage-api/models"
)

const inviteCreditName = "inviteCredits"

// InviteCreditDatabase contains the methods to use with the invite credit database
type InviteCreditDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.PendingInviteCredit, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PendingInviteCredit, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	FilePending(ctx context.Context, credit models.PendingInviteCredit) (bool, error)
	FindPendingDue(ctx context.Context, due time.Time) ([]models.PendingInviteCredit, error)
	TransitionFromPending(ctx context.Context, id primitive.ObjectID, status, reason string) (bool, error)
	IncrementSweepFailures(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type inviteCreditDatabase struct {
	db DatabaseHelper
}

// NewInviteCreditDatabase initializes a new instance of invite credit database with the provided db connection
func NewInviteCreditDatabase(db DatabaseHelper) InviteCreditDatabase {
	return &inviteCreditDatabase{
		db: db,
	}
}

func (c *inviteCreditDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.PendingInviteCredit, error) {
	credit := &models.PendingInviteCredit{}
	err := c.db.Collection(inviteCreditName).FindOne(ctx, filter, opts...).Decode(&credit)
	if err != nil {
		return nil, err
	}
	return credit, nil
}

func (c *inviteCreditDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PendingInviteCredit, error) {
	var credits []models.PendingInviteCredit
	cur := c.db.Collection(inviteCreditName).Find(ctx, filter, opts...)
	err := cur.Decode(&credits)
	if err != nil {
		return nil, err
	}
	return credits, nil
}

func (c *inviteCreditDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(inviteCreditName).CountDocuments(ctx, filter, opts...)
}

// FilePending records the credit with insert-if-absent semantics on
// (communityId, newMemberId), so a replayed join event collapses into the
// credit the first delivery filed. False means the pair already has a credit
// in some status.
func (c *inviteCreditDatabase) FilePending(ctx context.Context, credit models.PendingInviteCredit) (bool, error) {
	filter := bson.M{
		"communityId": credit.CommunityID,
		"newMemberId": credit.NewMemberID,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"communityId":     credit.CommunityID,
			"newMemberId":     credit.NewMemberID,
			"inviterId":       credit.InviterID,
			"inviteToken":     credit.InviteToken,
			"joinedAt":        credit.JoinedAt,
			"memberCreatedAt": credit.MemberCreatedAt,
			"status":          credit.Status,
			"sweepFailures":   int64(0),
			"updatedAt":       credit.UpdatedAt,
		},
	}
	res, err := c.db.Collection(inviteCreditName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}

// FindPendingDue returns pending credits whose minimum stay elapsed before due
func (c *inviteCreditDatabase) FindPendingDue(ctx context.Context, due time.Time) ([]models.PendingInviteCredit, error) {
	filter := bson.M{
		"status":   models.InviteCreditPending,
		"joinedAt": bson.M{"$lt": due},
	}
	return c.Find(ctx, filter)
}

// TransitionFromPending moves a credit to a terminal status only if it is
// still pending. False means the entry already left the pending state; a
// double sweep becomes a no-op here.
func (c *inviteCreditDatabase) TransitionFromPending(ctx context.Context, id primitive.ObjectID, status, reason string) (bool, error) {
	filter := bson.M{"_id": id, "status": models.InviteCreditPending}
	update := bson.M{
		"$set": bson.M{
			"status":       status,
			"rejectReason": reason,
			"updatedAt":    time.Now().UTC(),
		},
	}
	res, err := c.db.Collection(inviteCreditName).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// IncrementSweepFailures bumps the transient-failure counter and returns the
// new count so the scheduler can decide whether to escalate.
func (c *inviteCreditDatabase) IncrementSweepFailures(ctx context.Context, id primitive.ObjectID) (int64, error) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$inc": bson.M{"sweepFailures": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	credit := &models.PendingInviteCredit{}
	err := c.db.Collection(inviteCreditName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&credit)
	if err != nil {
		return 0, err
	}
	return credit.SweepFailures, nil
}
