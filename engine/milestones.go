package engine

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases"
	"github.com/guildline/engage-api/models"
)

// MilestoneTracker accumulates activity minutes per category and pays a
// one-time bonus as each configured threshold is crossed.
type MilestoneTracker struct {
	DB       databases.MilestoneProgressDatabase
	Ledger   *Ledger
	Rewards  *config.Rewards
	Notifier Notifier
}

// NewMilestoneTracker creates a milestone tracker
func NewMilestoneTracker(db databases.MilestoneProgressDatabase, ledger *Ledger, rewards *config.Rewards, notifier Notifier) *MilestoneTracker {
	return &MilestoneTracker{DB: db, Ledger: ledger, Rewards: rewards, Notifier: notifier}
}

// RecordProgress adds deltaMinutes to the member's cumulative total for the
// category and awards any newly-crossed thresholds. The award is idempotent
// by construction: the threshold is claimed into the completed set before the
// xp is granted, so re-delivering the same delta after a crash cannot pay a
// bonus twice.
func (t *MilestoneTracker) RecordProgress(ctx context.Context, communityID, userID string, category models.ActivityCategory, deltaMinutes int64) error {
	tiers, ok := t.Rewards.Milestones[category]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	if deltaMinutes < 0 {
		return fmt.Errorf("%w: got %d minutes for %s", ErrInvalidAmount, deltaMinutes, category)
	}
	if deltaMinutes == 0 {
		return nil
	}

	progress, err := t.DB.AddMinutes(ctx, communityID, userID, category, deltaMinutes)
	if err != nil {
		return fmt.Errorf("failed to add milestone minutes: %w", err)
	}

	for _, tier := range tiers {
		if progress.CumulativeMinutes < tier.Minutes || progress.Completed(tier.Minutes) {
			continue
		}

		claimed, err := t.DB.ClaimThreshold(ctx, communityID, userID, category, tier.Minutes)
		if err != nil {
			return fmt.Errorf("failed to claim milestone threshold: %w", err)
		}
		if !claimed {
			// another delivery of this delta got here first
			continue
		}

		if _, _, err := t.Ledger.Award(ctx, communityID, userID, tier.XP, models.SourceMilestone); err != nil {
			return fmt.Errorf("failed to award milestone bonus: %w", err)
		}

		zap.S().Infow("milestone reached",
			"communityId", communityID,
			"userId", userID,
			"category", category,
			"thresholdMinutes", tier.Minutes,
		)
		t.Notifier.MilestoneReached(models.MilestoneReachedEvent{
			CommunityID:      communityID,
			UserID:           userID,
			Category:         category,
			ThresholdMinutes: tier.Minutes,
			BonusXP:          tier.XP,
		})
	}
	return nil
}

// Progress returns the member's milestone progress for the category, or an
// empty document when none exists yet
func (t *MilestoneTracker) Progress(ctx context.Context, communityID, userID string, category models.ActivityCategory) (*models.MilestoneProgress, error) {
	if _, ok := t.Rewards.Milestones[category]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	progress, err := t.DB.FindOne(ctx, bson.M{
		"communityId": communityID,
		"userId":      userID,
		"category":    category,
	})
	if err == mongo.ErrNoDocuments {
		return &models.MilestoneProgress{
			CommunityID: communityID,
			UserID:      userID,
			Category:    category,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return progress, nil
}
