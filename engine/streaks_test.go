package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases/mocks"
	"github.com/guildline/engage-api/models"
)

func newTestStreakTracker(t *testing.T, now time.Time) (*StreakTracker, *mocks.StreakStateDatabase, *mocks.XPRecordDatabase, *recordingNotifier) {
	db := mocks.NewStreakStateDatabase(t)
	xpDB := mocks.NewXPRecordDatabase(t)
	notifier := &recordingNotifier{}
	ledger := NewLedger(xpDB, notifier)
	tracker := NewStreakTracker(db, ledger, config.DefaultRewards(), notifier)
	tracker.now = func() time.Time { return now }
	return tracker, db, xpDB, notifier
}

func TestTouchRejectsUnknownStreakType(t *testing.T) {
	tracker, _, _, _ := newTestStreakTracker(t, time.Now())

	err := tracker.Touch(context.Background(), "comm-1", "user-1", "weekly")
	assert.ErrorIs(t, err, ErrUnknownStreakType)
}

func TestTouchStartsFreshStreak(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tracker, db, _, _ := newTestStreakTracker(t, now)

	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)
	db.On("CompareAndSetProgress", mock.Anything, "comm-1", "user-1", models.StreakDaily,
		time.Time{}, int64(1), int64(1), now).Return(true, nil)

	err := tracker.Touch(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)
}

func TestTouchIncrementsWithin24Hours(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tracker, db, _, _ := newTestStreakTracker(t, now)

	last := now.Add(-22 * time.Hour)
	db.On("FindOne", mock.Anything, mock.Anything).Return(&models.StreakState{
		CommunityID:    "comm-1",
		UserID:         "user-1",
		StreakType:     models.StreakDaily,
		CurrentStreak:  1,
		HighestStreak:  4,
		LastActivityAt: last,
	}, nil)
	db.On("CompareAndSetProgress", mock.Anything, "comm-1", "user-1", models.StreakDaily,
		last, int64(2), int64(4), now).Return(true, nil)

	err := tracker.Touch(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)
}

func TestTouchResetsAfterGapPreservingHighest(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	tracker, db, _, _ := newTestStreakTracker(t, now)

	last := now.Add(-72 * time.Hour)
	db.On("FindOne", mock.Anything, mock.Anything).Return(&models.StreakState{
		CommunityID:    "comm-1",
		UserID:         "user-1",
		StreakType:     models.StreakDaily,
		CurrentStreak:  9,
		HighestStreak:  9,
		LastActivityAt: last,
		// threshold 3 already paid on the earlier run
		CompletedRewards: []int64{3},
	}, nil)
	db.On("CompareAndSetProgress", mock.Anything, "comm-1", "user-1", models.StreakDaily,
		last, int64(1), int64(9), now).Return(true, nil)

	err := tracker.Touch(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)
}

func TestTouchPaysThresholdOnCross(t *testing.T) {
	now := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	tracker, db, xpDB, notifier := newTestStreakTracker(t, now)

	last := now.Add(-20 * time.Hour)
	db.On("FindOne", mock.Anything, mock.Anything).Return(&models.StreakState{
		CommunityID:    "comm-1",
		UserID:         "user-1",
		StreakType:     models.StreakDaily,
		CurrentStreak:  2,
		HighestStreak:  2,
		LastActivityAt: last,
	}, nil)
	db.On("ClaimReward", mock.Anything, "comm-1", "user-1", models.StreakDaily, int64(3)).
		Return(true, nil)
	xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(30)).
		Return(&models.XPRecord{XP: 75}, nil)
	db.On("CompareAndSetProgress", mock.Anything, "comm-1", "user-1", models.StreakDaily,
		last, int64(3), int64(3), now).Return(true, nil)

	err := tracker.Touch(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)

	assert.Len(t, notifier.streaks, 1)
	event := notifier.streaks[0]
	assert.Equal(t, models.StreakDaily, event.StreakType)
	assert.EqualValues(t, 3, event.Threshold)
	assert.EqualValues(t, 3, event.CurrentStreak)
	assert.EqualValues(t, 30, event.BonusXP)
}

func TestTouchSkipsAlreadyRewardedThreshold(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	tracker, db, _, notifier := newTestStreakTracker(t, now)

	last := now.Add(-20 * time.Hour)
	db.On("FindOne", mock.Anything, mock.Anything).Return(&models.StreakState{
		CommunityID:      "comm-1",
		UserID:           "user-1",
		StreakType:       models.StreakDaily,
		CurrentStreak:    3,
		HighestStreak:    3,
		LastActivityAt:   last,
		CompletedRewards: []int64{3},
	}, nil)
	db.On("CompareAndSetProgress", mock.Anything, "comm-1", "user-1", models.StreakDaily,
		last, int64(4), int64(4), now).Return(true, nil)

	err := tracker.Touch(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)
	assert.Empty(t, notifier.streaks)
}

func TestTouchDoesNotPayWhenClaimLost(t *testing.T) {
	now := time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	tracker, db, _, notifier := newTestStreakTracker(t, now)

	last := now.Add(-20 * time.Hour)
	db.On("FindOne", mock.Anything, mock.Anything).Return(&models.StreakState{
		CommunityID:    "comm-1",
		UserID:         "user-1",
		StreakType:     models.StreakDaily,
		CurrentStreak:  2,
		HighestStreak:  2,
		LastActivityAt: last,
	}, nil)
	db.On("ClaimReward", mock.Anything, "comm-1", "user-1", models.StreakDaily, int64(3)).
		Return(false, nil)
	db.On("CompareAndSetProgress", mock.Anything, "comm-1", "user-1", models.StreakDaily,
		last, int64(3), int64(3), now).Return(true, nil)

	err := tracker.Touch(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)
	assert.Empty(t, notifier.streaks)
}

func TestTouchIfNewDaySkipsSameUTCDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	tracker, db, _, _ := newTestStreakTracker(t, now)

	db.On("FindOne", mock.Anything, mock.Anything).Return(&models.StreakState{
		CommunityID:    "comm-1",
		UserID:         "user-1",
		StreakType:     models.StreakDaily,
		CurrentStreak:  2,
		HighestStreak:  2,
		LastActivityAt: time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC),
	}, nil).Once()

	// same natural day; no compare-and-set may happen
	err := tracker.TouchIfNewDay(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)
}

func TestTouchIfNewDayTouchesAcrossMidnight(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 30, 0, 0, time.UTC)
	tracker, db, _, _ := newTestStreakTracker(t, now)

	last := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	state := &models.StreakState{
		CommunityID:    "comm-1",
		UserID:         "user-1",
		StreakType:     models.StreakDaily,
		CurrentStreak:  1,
		HighestStreak:  1,
		LastActivityAt: last,
	}
	db.On("FindOne", mock.Anything, mock.Anything).Return(state, nil).Twice()
	db.On("CompareAndSetProgress", mock.Anything, "comm-1", "user-1", models.StreakDaily,
		last, int64(2), int64(2), now).Return(true, nil)

	err := tracker.TouchIfNewDay(context.Background(), "comm-1", "user-1", models.StreakDaily)
	assert.NoError(t, err)
}

func TestStreakReturnsEmptyStateForUnknownMember(t *testing.T) {
	tracker, db, _, _ := newTestStreakTracker(t, time.Now())

	db.On("FindOne", mock.Anything, mock.Anything).Return(nil, mongo.ErrNoDocuments)

	state, err := tracker.Streak(context.Background(), "comm-1", "user-1", models.StreakActivity)
	assert.NoError(t, err)
	assert.Equal(t, "comm-1", state.CommunityID)
	assert.EqualValues(t, 0, state.CurrentStreak)
}

func TestStreakRejectsUnknownType(t *testing.T) {
	tracker, _, _, _ := newTestStreakTracker(t, time.Now())

	_, err := tracker.Streak(context.Background(), "comm-1", "user-1", "weekly")
	assert.ErrorIs(t, err, ErrUnknownStreakType)
}
