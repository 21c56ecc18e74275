package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guildline/engage-api/databases"
	"github.com/guildline/engage-api/databases/mocks"
	"github.com/guildline/engage-api/models"
)

func TestInviteCreditDatabase_FilePending(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	// the replayed join matches the existing row instead of upserting
	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, bson.M{"communityId": "comm-1", "newMemberId": "member-1"}, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil).Once()
	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, bson.M{"communityId": "comm-1", "newMemberId": "member-1"}, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).Once()

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteCredits").Return(collectionHelper)

	creditDB := databases.NewInviteCreditDatabase(dbHelper)

	credit := models.PendingInviteCredit{
		CommunityID: "comm-1",
		NewMemberID: "member-1",
		InviterID:   "inviter-1",
		Status:      models.InviteCreditPending,
	}

	filed, err := creditDB.FilePending(context.Background(), credit)
	assert.NoError(t, err)
	assert.True(t, filed)

	filed, err = creditDB.FilePending(context.Background(), credit)
	assert.NoError(t, err)
	assert.False(t, filed)
}

func TestInviteCreditDatabase_TransitionFromPending(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	id := primitive.NewObjectID()

	// guarded update matches only while the credit is still pending
	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, bson.M{"_id": id, "status": models.InviteCreditPending}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteCredits").Return(collectionHelper)

	creditDB := databases.NewInviteCreditDatabase(dbHelper)

	moved, err := creditDB.TransitionFromPending(context.Background(), id, models.InviteCreditMatured, "")

	assert.NoError(t, err)
	assert.True(t, moved)
}

func TestInviteCreditDatabase_TransitionFromPendingAlreadyTerminal(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	id := primitive.NewObjectID()

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 0, ModifiedCount: 0}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteCredits").Return(collectionHelper)

	creditDB := databases.NewInviteCreditDatabase(dbHelper)

	moved, err := creditDB.TransitionFromPending(context.Background(), id, models.InviteCreditRejected, models.RejectLeftEarly)

	assert.NoError(t, err)
	assert.False(t, moved)
}

func TestInviteCreditDatabase_FindPendingDue(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cursorHelper.(*mocks.CursorHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.PendingInviteCredit)
		*arg = []models.PendingInviteCredit{{NewMemberID: "member-1", Status: models.InviteCreditPending}}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("Find", mock.Anything, bson.M{
			"status":   models.InviteCreditPending,
			"joinedAt": bson.M{"$lt": due},
		}).
		Return(cursorHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteCredits").Return(collectionHelper)

	creditDB := databases.NewInviteCreditDatabase(dbHelper)

	credits, err := creditDB.FindPendingDue(context.Background(), due)

	assert.NoError(t, err)
	assert.Len(t, credits, 1)
	assert.Equal(t, "member-1", credits[0].NewMemberID)
}

func TestInviteCreditDatabase_IncrementSweepFailures(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelper databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelper = &mocks.SingleResultHelper{}

	id := primitive.NewObjectID()

	srHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.PendingInviteCredit)
		(*arg).SweepFailures = 4
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOneAndUpdate", mock.Anything, bson.M{"_id": id}, mock.Anything, mock.Anything).
		Return(srHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteCredits").Return(collectionHelper)

	creditDB := databases.NewInviteCreditDatabase(dbHelper)

	failures, err := creditDB.IncrementSweepFailures(context.Background(), id)

	assert.NoError(t, err)
	assert.EqualValues(t, 4, failures)
}

func TestInviteLedgerDatabase_ClaimReward(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	entry := models.InviteLedgerEntry{
		EntryID:     "entry-1",
		CommunityID: "comm-1",
		NewMemberID: "member-1",
		InviterID:   "inviter-1",
		Rewarded:    true,
	}

	// first sweep inserts the row, second finds it in place
	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, bson.M{"communityId": "comm-1", "newMemberId": "member-1"}, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil).Once()
	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, bson.M{"communityId": "comm-1", "newMemberId": "member-1"}, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil).Once()

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteLedger").Return(collectionHelper)

	ledgerDB := databases.NewInviteLedgerDatabase(dbHelper)

	claimed, err := ledgerDB.ClaimReward(context.Background(), entry)
	assert.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = ledgerDB.ClaimReward(context.Background(), entry)
	assert.NoError(t, err)
	assert.False(t, claimed)
}

func TestInviteMilestoneDatabase_Claim(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteMilestones").Return(collectionHelper)

	milestoneDB := databases.NewInviteMilestoneDatabase(dbHelper)

	claimed, err := milestoneDB.Claim(context.Background(), "comm-1", "inviter-1", 5)

	assert.NoError(t, err)
	assert.True(t, claimed)
}

func TestInviteMilestoneDatabase_ClaimError(t *testing.T) {

	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}

	collectionHelper.(*mocks.CollectionHelper).
		On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mocked-error"))

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "inviteMilestones").Return(collectionHelper)

	milestoneDB := databases.NewInviteMilestoneDatabase(dbHelper)

	claimed, err := milestoneDB.Claim(context.Background(), "comm-1", "inviter-1", 5)

	assert.EqualError(t, err, "mocked-error")
	assert.False(t, claimed)
}
