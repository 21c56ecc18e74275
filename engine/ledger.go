package engine

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/databases"
	"github.com/guildline/engage-api/models"
)

// Ledger is the atomic xp store. It knows nothing about why xp was granted;
// source is log metadata only and callers own their dedupe, except where the
// trackers define it explicitly.
type Ledger struct {
	DB       databases.XPRecordDatabase
	Notifier Notifier
}

// NewLedger creates a ledger over the given xp record store
func NewLedger(db databases.XPRecordDatabase, notifier Notifier) *Ledger {
	return &Ledger{DB: db, Notifier: notifier}
}

// Award atomically adds amount to the member's total and reports the new
// total and whether a level boundary was crossed. The increment happens as a
// single store operation, so concurrent awards for the same member never lose
// an update. A zero or negative amount is a programmer error.
func (l *Ledger) Award(ctx context.Context, communityID, userID string, amount int64, source models.XPSource) (int64, bool, error) {
	if amount <= 0 {
		return 0, false, fmt.Errorf("%w: got %d from %s", ErrInvalidAmount, amount, source)
	}

	record, err := l.DB.IncrementXP(ctx, communityID, userID, amount)
	if err != nil {
		return 0, false, fmt.Errorf("failed to increment xp: %w", err)
	}

	oldTotal := record.XP - amount
	leveledUp := Level(oldTotal) < Level(record.XP)

	zap.S().Debugw("xp awarded",
		"communityId", communityID,
		"userId", userID,
		"amount", amount,
		"source", source,
		"newTotal", record.XP,
	)

	if leveledUp {
		newLevel := Level(record.XP)
		zap.S().Infow("member leveled up",
			"communityId", communityID,
			"userId", userID,
			"level", newLevel,
		)
		l.Notifier.LevelUp(models.LevelUpEvent{
			CommunityID: communityID,
			UserID:      userID,
			NewLevel:    newLevel,
			TotalXP:     record.XP,
			Source:      source,
		})
	}

	return record.XP, leveledUp, nil
}

// GetLevel returns the member's xp total and derived level. A member with no
// record yet is level 0 with zero xp.
func (l *Ledger) GetLevel(ctx context.Context, communityID, userID string) (int64, int64, error) {
	record, err := l.DB.FindOne(ctx, bson.M{"communityId": communityID, "userId": userID})
	if err == mongo.ErrNoDocuments {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return record.XP, Level(record.XP), nil
}

// GetRank returns the member's 1-based position among all community members
// by xp, descending, along with their xp and level
func (l *Ledger) GetRank(ctx context.Context, communityID, userID string) (int64, int64, int64, error) {
	record, err := l.DB.FindOne(ctx, bson.M{"communityId": communityID, "userId": userID})
	if err == mongo.ErrNoDocuments {
		total, err := l.DB.CountDocuments(ctx, bson.M{"communityId": communityID})
		if err != nil {
			return 0, 0, 0, err
		}
		return total + 1, 0, 0, nil
	}
	if err != nil {
		return 0, 0, 0, err
	}

	higher, err := l.DB.CountDocuments(ctx, bson.M{
		"communityId": communityID,
		"xp":          bson.M{"$gt": record.XP},
	})
	if err != nil {
		return 0, 0, 0, err
	}
	return higher + 1, record.XP, Level(record.XP), nil
}

// Leaderboard returns the community's top records by xp, descending
func (l *Ledger) Leaderboard(ctx context.Context, communityID string, limit int64) ([]models.XPRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "xp", Value: -1}}).
		SetLimit(limit)
	return l.DB.Find(ctx, bson.M{"communityId": communityID}, opts)
}
