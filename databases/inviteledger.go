package databases

// go generate: mockery --name InviteLedgerDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guildline/engage-api/models"
)

const inviteLedgerName = "inviteLedger"

// InviteLedgerDatabase contains the methods to use with the invite ledger database
type InviteLedgerDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InviteLedgerEntry, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	ClaimReward(ctx context.Context, entry models.InviteLedgerEntry) (bool, error)
}

type inviteLedgerDatabase struct {
	db DatabaseHelper
}

// NewInviteLedgerDatabase initializes a new instance of invite ledger database with the provided db connection
func NewInviteLedgerDatabase(db DatabaseHelper) InviteLedgerDatabase {
	return &inviteLedgerDatabase{
		db: db,
	}
}

func (c *inviteLedgerDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.InviteLedgerEntry, error) {
	var entries []models.InviteLedgerEntry
	cur := c.db.Collection(inviteLedgerName).Find(ctx, filter, opts...)
	err := cur.Decode(&entries)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *inviteLedgerDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(inviteLedgerName).CountDocuments(ctx, filter, opts...)
}

// ClaimReward writes the rewarded ledger entry with insert-if-absent
// semantics on (communityId, newMemberId). This upsert is the single dedupe
// point for invite credit: true means the entry was created by this call and
// the inviter is owed the award, false means a previous sweep already
// credited the pair.
func (c *inviteLedgerDatabase) ClaimReward(ctx context.Context, entry models.InviteLedgerEntry) (bool, error) {
	filter := bson.M{
		"communityId": entry.CommunityID,
		"newMemberId": entry.NewMemberID,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"entryId":     entry.EntryID,
			"communityId": entry.CommunityID,
			"newMemberId": entry.NewMemberID,
			"inviterId":   entry.InviterID,
			"inviteToken": entry.InviteToken,
			"timestamp":   entry.Timestamp,
			"rewarded":    true,
		},
	}
	res, err := c.db.Collection(inviteLedgerName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount == 1, nil
}
