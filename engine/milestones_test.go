package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases/mocks"
	"github.com/guildline/engage-api/models"
)

func newTestMilestoneTracker(t *testing.T) (*MilestoneTracker, *mocks.MilestoneProgressDatabase, *mocks.XPRecordDatabase, *recordingNotifier) {
	db := mocks.NewMilestoneProgressDatabase(t)
	xpDB := mocks.NewXPRecordDatabase(t)
	notifier := &recordingNotifier{}
	ledger := NewLedger(xpDB, notifier)
	tracker := NewMilestoneTracker(db, ledger, config.DefaultRewards(), notifier)
	return tracker, db, xpDB, notifier
}

func TestRecordProgressRejectsUnknownCategory(t *testing.T) {
	tracker, _, _, _ := newTestMilestoneTracker(t)

	err := tracker.RecordProgress(context.Background(), "comm-1", "user-1", "knitting", 10)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestRecordProgressRejectsNegativeDelta(t *testing.T) {
	tracker, _, _, _ := newTestMilestoneTracker(t)

	err := tracker.RecordProgress(context.Background(), "comm-1", "user-1", models.CategoryGaming, -5)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRecordProgressIgnoresZeroDelta(t *testing.T) {
	tracker, _, _, _ := newTestMilestoneTracker(t)

	// no store expectations registered; a call would fail the test
	err := tracker.RecordProgress(context.Background(), "comm-1", "user-1", models.CategoryGaming, 0)
	assert.NoError(t, err)
}

func TestRecordProgressAwardsCrossedThreshold(t *testing.T) {
	tracker, db, xpDB, notifier := newTestMilestoneTracker(t)

	db.On("AddMinutes", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(25)).
		Return(&models.MilestoneProgress{
			CommunityID:       "comm-1",
			UserID:            "user-1",
			Category:          models.CategoryGaming,
			CumulativeMinutes: 65,
		}, nil)
	db.On("ClaimThreshold", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(60)).
		Return(true, nil)
	xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(50)).
		Return(&models.XPRecord{XP: 80}, nil)

	err := tracker.RecordProgress(context.Background(), "comm-1", "user-1", models.CategoryGaming, 25)
	assert.NoError(t, err)

	assert.Len(t, notifier.milestones, 1)
	event := notifier.milestones[0]
	assert.Equal(t, models.CategoryGaming, event.Category)
	assert.EqualValues(t, 60, event.ThresholdMinutes)
	assert.EqualValues(t, 50, event.BonusXP)
}

func TestRecordProgressSkipsCompletedThresholds(t *testing.T) {
	tracker, db, _, notifier := newTestMilestoneTracker(t)

	db.On("AddMinutes", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(10)).
		Return(&models.MilestoneProgress{
			CommunityID:         "comm-1",
			UserID:              "user-1",
			Category:            models.CategoryGaming,
			CumulativeMinutes:   75,
			CompletedMilestones: []int64{60},
		}, nil)

	err := tracker.RecordProgress(context.Background(), "comm-1", "user-1", models.CategoryGaming, 10)
	assert.NoError(t, err)
	assert.Empty(t, notifier.milestones)
}

func TestRecordProgressDoesNotPayWhenClaimLost(t *testing.T) {
	tracker, db, _, notifier := newTestMilestoneTracker(t)

	db.On("AddMinutes", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(70)).
		Return(&models.MilestoneProgress{
			CommunityID:       "comm-1",
			UserID:            "user-1",
			Category:          models.CategoryGaming,
			CumulativeMinutes: 70,
		}, nil)
	db.On("ClaimThreshold", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(60)).
		Return(false, nil)

	// a concurrent delivery claimed the threshold first; no xp, no event
	err := tracker.RecordProgress(context.Background(), "comm-1", "user-1", models.CategoryGaming, 70)
	assert.NoError(t, err)
	assert.Empty(t, notifier.milestones)
}

func TestRecordProgressAwardsEveryNewlyCrossedThreshold(t *testing.T) {
	tracker, db, xpDB, notifier := newTestMilestoneTracker(t)

	// one large delta jumps the first two gaming thresholds at once
	db.On("AddMinutes", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(200)).
		Return(&models.MilestoneProgress{
			CommunityID:       "comm-1",
			UserID:            "user-1",
			Category:          models.CategoryGaming,
			CumulativeMinutes: 200,
		}, nil)
	db.On("ClaimThreshold", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(60)).
		Return(true, nil)
	db.On("ClaimThreshold", mock.Anything, "comm-1", "user-1", models.CategoryGaming, int64(180)).
		Return(true, nil)
	xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(50)).
		Return(&models.XPRecord{XP: 50}, nil)
	xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(100)).
		Return(&models.XPRecord{XP: 150}, nil)

	err := tracker.RecordProgress(context.Background(), "comm-1", "user-1", models.CategoryGaming, 200)
	assert.NoError(t, err)
	assert.Len(t, notifier.milestones, 2)
}

func TestProgressReturnsEmptyDocumentForUnknownMember(t *testing.T) {
	tracker, db, _, _ := newTestMilestoneTracker(t)

	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	progress, err := tracker.Progress(context.Background(), "comm-1", "user-1", models.CategoryDevelopment)
	assert.NoError(t, err)
	assert.Equal(t, "comm-1", progress.CommunityID)
	assert.EqualValues(t, 0, progress.CumulativeMinutes)
	assert.Empty(t, progress.CompletedMilestones)
}

func TestProgressRejectsUnknownCategory(t *testing.T) {
	tracker, _, _, _ := newTestMilestoneTracker(t)

	_, err := tracker.Progress(context.Background(), "comm-1", "user-1", "knitting")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
