package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases/mocks"
	"github.com/guildline/engage-api/models"
)

type normalizerFixture struct {
	normalizer      *Normalizer
	xpDB            *mocks.XPRecordDatabase
	milestoneDB     *mocks.MilestoneProgressDatabase
	streakDB        *mocks.StreakStateDatabase
	creditDB        *mocks.InviteCreditDatabase
	inviteLedgerDB  *mocks.InviteLedgerDatabase
	inviteMilestone *mocks.InviteMilestoneDatabase
	notifier        *recordingNotifier
	clock           time.Time
}

func newNormalizerFixture(t *testing.T) *normalizerFixture {
	f := &normalizerFixture{
		xpDB:            mocks.NewXPRecordDatabase(t),
		milestoneDB:     mocks.NewMilestoneProgressDatabase(t),
		streakDB:        mocks.NewStreakStateDatabase(t),
		creditDB:        mocks.NewInviteCreditDatabase(t),
		inviteLedgerDB:  mocks.NewInviteLedgerDatabase(t),
		inviteMilestone: mocks.NewInviteMilestoneDatabase(t),
		notifier:        &recordingNotifier{},
		clock:           time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	clockFn := func() time.Time { return f.clock }

	rewards := config.DefaultRewards()
	ledger := NewLedger(f.xpDB, f.notifier)
	milestones := NewMilestoneTracker(f.milestoneDB, ledger, rewards, f.notifier)
	streaks := NewStreakTracker(f.streakDB, ledger, rewards, f.notifier)
	streaks.now = clockFn
	reconciler := NewInviteReconciler(f.creditDB, f.inviteLedgerDB, f.inviteMilestone, ledger, rewards, f.notifier)
	reconciler.now = clockFn
	limiter := NewRateLimiter(rewards.Cooldowns)
	limiter.now = clockFn
	sessions := NewSessionStore()
	sessions.now = clockFn

	f.normalizer = NewNormalizer(limiter, sessions, ledger, milestones, streaks, reconciler, rewards)
	f.normalizer.now = clockFn
	return f
}

// queueRand makes message/command base amounts deterministic
func (f *normalizerFixture) queueRand(amounts ...int64) {
	f.normalizer.randRange = func(min, max int64) int64 {
		next := amounts[0]
		amounts = amounts[1:]
		return next
	}
}

// expectDailyStreakCounted stubs the streak store so the daily touch sees a
// same-day record and skips
func (f *normalizerFixture) expectStreakCounted(streakType models.StreakType) {
	f.streakDB.On("FindOne", mock.Anything, mock.Anything).Return(&models.StreakState{
		CommunityID:    "comm-1",
		UserID:         "user-1",
		StreakType:     streakType,
		CurrentStreak:  2,
		HighestStreak:  2,
		LastActivityAt: f.clock,
	}, nil)
}

func TestHandleMessageLevelsUpOnThirdAward(t *testing.T) {
	f := newNormalizerFixture(t)
	f.queueRand(25, 30, 45)
	f.expectStreakCounted(models.StreakDaily)

	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(25)).
		Return(&models.XPRecord{XP: 25}, nil)
	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(30)).
		Return(&models.XPRecord{XP: 55}, nil)
	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(45)).
		Return(&models.XPRecord{XP: 100}, nil)

	ev := models.MessageEvent{CommunityID: "comm-1", UserID: "user-1", ChannelID: "chan-1", MessageLength: 40}
	for i := 0; i < 3; i++ {
		f.normalizer.HandleMessage(context.Background(), ev)
		f.clock = f.clock.Add(61 * time.Second)
	}

	// the third award crosses the boundary at 100 xp
	assert.Len(t, f.notifier.levelUps, 1)
	event := f.notifier.levelUps[0]
	assert.EqualValues(t, 1, event.NewLevel)
	assert.EqualValues(t, 100, event.TotalXP)
	assert.Equal(t, models.SourceMessage, event.Source)
}

func TestHandleMessageRateLimitedInsideWindow(t *testing.T) {
	f := newNormalizerFixture(t)
	f.queueRand(20, 20)
	f.expectStreakCounted(models.StreakDaily)

	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(20)).
		Return(&models.XPRecord{XP: 20}, nil).Once()

	ev := models.MessageEvent{CommunityID: "comm-1", UserID: "user-1", ChannelID: "chan-1"}
	f.normalizer.HandleMessage(context.Background(), ev)
	f.clock = f.clock.Add(10 * time.Second)
	f.normalizer.HandleMessage(context.Background(), ev)
}

func TestHandleMessageAppliesLengthAndMediaBonuses(t *testing.T) {
	f := newNormalizerFixture(t)
	f.queueRand(20)
	f.expectStreakCounted(models.StreakDaily)

	// 20 base + 10 length + 10 media
	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(40)).
		Return(&models.XPRecord{XP: 40}, nil)

	f.normalizer.HandleMessage(context.Background(), models.MessageEvent{
		CommunityID:   "comm-1",
		UserID:        "user-1",
		MessageLength: 300,
		HasMedia:      true,
	})
}

func TestHandleVoiceStateCapsMinutesAndAddsStreamBonus(t *testing.T) {
	f := newNormalizerFixture(t)

	// 45 minutes streamed, capped at 30 payable minutes plus the stream bonus
	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(40)).
		Return(&models.XPRecord{XP: 40}, nil)

	f.normalizer.HandleVoiceState(context.Background(), models.VoiceStateEvent{
		CommunityID: "comm-1", UserID: "user-1", ChannelID: "chan-1", Streaming: true,
	})
	f.clock = f.clock.Add(45 * time.Minute)
	f.normalizer.HandleVoiceState(context.Background(), models.VoiceStateEvent{
		CommunityID: "comm-1", UserID: "user-1",
	})
}

func TestHandleVoiceStateLeaveWithoutSessionIsDropped(t *testing.T) {
	f := newNormalizerFixture(t)

	f.normalizer.HandleVoiceState(context.Background(), models.VoiceStateEvent{
		CommunityID: "comm-1", UserID: "user-1",
	})
}

func TestHandlePresenceDiscardsShortSession(t *testing.T) {
	f := newNormalizerFixture(t)

	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
		Kind: models.ActivityPlaying, ActivityName: "Factorio",
	})
	f.clock = f.clock.Add(4 * time.Minute)

	// below the five minute floor; nothing may reach any store
	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
	})
}

func TestHandlePresenceDevToolFeedsDevelopmentLadder(t *testing.T) {
	f := newNormalizerFixture(t)
	f.expectStreakCounted(models.StreakActivity)

	// 30 min playing at 1.0 plus the app bonus
	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(35)).
		Return(&models.XPRecord{XP: 35}, nil)
	f.milestoneDB.On("AddMinutes", mock.Anything, "comm-1", "user-1", models.CategoryDevelopment, int64(30)).
		Return(&models.MilestoneProgress{
			CommunityID:       "comm-1",
			UserID:            "user-1",
			Category:          models.CategoryDevelopment,
			CumulativeMinutes: 30,
		}, nil)

	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
		Kind: models.ActivityPlaying, ActivityName: "Visual Studio Code",
	})
	f.clock = f.clock.Add(30 * time.Minute)
	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
	})
}

func TestHandlePresenceStreamingFeedsStreamingLadder(t *testing.T) {
	f := newNormalizerFixture(t)
	f.expectStreakCounted(models.StreakActivity)

	// 60 min streaming at 1.5 is 90, capped at the 60 session cap
	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(60)).
		Return(&models.XPRecord{XP: 60}, nil)
	f.milestoneDB.On("AddMinutes", mock.Anything, "comm-1", "user-1", models.CategoryStreaming, int64(60)).
		Return(&models.MilestoneProgress{
			CommunityID:       "comm-1",
			UserID:            "user-1",
			Category:          models.CategoryStreaming,
			CumulativeMinutes: 60,
		}, nil).Once()
	f.milestoneDB.On("ClaimThreshold", mock.Anything, "comm-1", "user-1", models.CategoryStreaming, int64(60)).
		Return(true, nil)
	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(50)).
		Return(&models.XPRecord{XP: 110}, nil)

	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
		Kind: models.ActivityStreaming, ActivityName: "Twitch",
	})
	f.clock = f.clock.Add(60 * time.Minute)
	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
	})

	assert.Len(t, f.notifier.milestones, 1)
	assert.EqualValues(t, 60, f.notifier.milestones[0].ThresholdMinutes)
}

func TestHandlePresenceIgnoresUnknownActivityKind(t *testing.T) {
	f := newNormalizerFixture(t)

	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
		Kind: models.ActivityKind(42), ActivityName: "Mystery",
	})
	f.clock = f.clock.Add(30 * time.Minute)

	// no session was opened, so the stop resolves to nothing
	f.normalizer.HandlePresence(context.Background(), models.PresenceEvent{
		CommunityID: "comm-1", UserID: "user-1",
	})
}

func TestHandleCommandAddsElevatedBonus(t *testing.T) {
	f := newNormalizerFixture(t)
	f.queueRand(8)

	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(13)).
		Return(&models.XPRecord{XP: 13}, nil)

	f.normalizer.HandleCommand(context.Background(), models.CommandEvent{
		CommunityID: "comm-1", UserID: "user-1", Command: "purge", Elevated: true,
	})
}

func TestHandleBoostIsNeverRateLimited(t *testing.T) {
	f := newNormalizerFixture(t)

	f.xpDB.On("IncrementXP", mock.Anything, "comm-1", "user-1", int64(200)).
		Return(&models.XPRecord{XP: 200}, nil).Twice()

	// two boosts back to back both pay out
	f.normalizer.HandleBoost(context.Background(), models.BoostEvent{CommunityID: "comm-1", UserID: "user-1"})
	f.normalizer.HandleBoost(context.Background(), models.BoostEvent{CommunityID: "comm-1", UserID: "user-1"})
}
