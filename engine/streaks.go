package engine

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases"
	"github.com/guildline/engage-api/models"
)

const streakResetGap = 24 * time.Hour

// StreakTracker maintains continuity counters per streak type and pays a
// one-time bonus as each configured threshold is crossed.
type StreakTracker struct {
	DB       databases.StreakStateDatabase
	Ledger   *Ledger
	Rewards  *config.Rewards
	Notifier Notifier
	now      func() time.Time
}

// NewStreakTracker creates a streak tracker
func NewStreakTracker(db databases.StreakStateDatabase, ledger *Ledger, rewards *config.Rewards, notifier Notifier) *StreakTracker {
	return &StreakTracker{DB: db, Ledger: ledger, Rewards: rewards, Notifier: notifier, now: time.Now}
}

// Touch advances the member's streak: reset to 1 when the gap since the last
// activity exceeds 24 hours, increment otherwise. Callers must not touch the
// same type more than once per natural day; TouchIfNewDay enforces that for
// event-driven callers. Reward thresholds are claimed into the completed set
// before awarding, and the streak counters persist last, so a crash between
// award and persistence retries into the membership check instead of paying
// twice.
func (t *StreakTracker) Touch(ctx context.Context, communityID, userID string, streakType models.StreakType) error {
	tiers, ok := t.Rewards.Streaks[streakType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStreakType, streakType)
	}

	state, err := t.DB.FindOne(ctx, bson.M{
		"communityId": communityID,
		"userId":      userID,
		"streakType":  streakType,
	})
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to read streak state: %w", err)
	}

	now := t.now()
	var prevLast time.Time
	current := int64(1)
	highest := int64(1)
	if err == nil {
		prevLast = state.LastActivityAt
		if now.Sub(state.LastActivityAt) <= streakResetGap {
			current = state.CurrentStreak + 1
		}
		highest = state.HighestStreak
		if current > highest {
			highest = current
		}
	}

	for _, tier := range tiers {
		if tier.Days > current {
			continue
		}
		if err == nil && state.Rewarded(tier.Days) {
			continue
		}

		claimed, claimErr := t.DB.ClaimReward(ctx, communityID, userID, streakType, tier.Days)
		if claimErr != nil {
			return fmt.Errorf("failed to claim streak reward: %w", claimErr)
		}
		if !claimed {
			continue
		}

		if _, _, awardErr := t.Ledger.Award(ctx, communityID, userID, tier.XP, models.SourceStreak); awardErr != nil {
			return fmt.Errorf("failed to award streak bonus: %w", awardErr)
		}

		zap.S().Infow("streak reward granted",
			"communityId", communityID,
			"userId", userID,
			"streakType", streakType,
			"threshold", tier.Days,
		)
		t.Notifier.StreakReward(models.StreakRewardEvent{
			CommunityID:   communityID,
			UserID:        userID,
			StreakType:    streakType,
			Threshold:     tier.Days,
			CurrentStreak: current,
			BonusXP:       tier.XP,
		})
	}

	persisted, err := t.DB.CompareAndSetProgress(ctx, communityID, userID, streakType, prevLast, current, highest, now)
	if err != nil {
		return fmt.Errorf("failed to persist streak state: %w", err)
	}
	if !persisted {
		// a concurrent touch won the compare-and-set; its count already
		// covers this day
		zap.S().Debugw("streak touch lost compare-and-set",
			"communityId", communityID,
			"userId", userID,
			"streakType", streakType,
		)
	}
	return nil
}

// TouchIfNewDay touches the streak only when the member has not been counted
// today (UTC). The extra read keeps event-driven callers from touching more
// than once per natural day.
func (t *StreakTracker) TouchIfNewDay(ctx context.Context, communityID, userID string, streakType models.StreakType) error {
	state, err := t.DB.FindOne(ctx, bson.M{
		"communityId": communityID,
		"userId":      userID,
		"streakType":  streakType,
	})
	if err != nil && err != mongo.ErrNoDocuments {
		return fmt.Errorf("failed to read streak state: %w", err)
	}
	if err == nil && sameUTCDay(state.LastActivityAt, t.now()) {
		return nil
	}
	return t.Touch(ctx, communityID, userID, streakType)
}

// Streak returns the member's streak state for the type, or an empty state
// when none exists yet
func (t *StreakTracker) Streak(ctx context.Context, communityID, userID string, streakType models.StreakType) (*models.StreakState, error) {
	if _, ok := t.Rewards.Streaks[streakType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStreakType, streakType)
	}
	state, err := t.DB.FindOne(ctx, bson.M{
		"communityId": communityID,
		"userId":      userID,
		"streakType":  streakType,
	})
	if err == mongo.ErrNoDocuments {
		return &models.StreakState{
			CommunityID: communityID,
			UserID:      userID,
			StreakType:  streakType,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
