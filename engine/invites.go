package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases"
	"github.com/guildline/engage-api/models"
)

// InviteReconciler holds referral joins in a pending state and only credits
// the inviter after the new member's stay matures and every validity
// predicate holds. Credits move pending -> matured or pending -> rejected;
// both are terminal.
type InviteReconciler struct {
	CreditDB    databases.InviteCreditDatabase
	LedgerDB    databases.InviteLedgerDatabase
	MilestoneDB databases.InviteMilestoneDatabase
	XP          *Ledger
	Rewards     *config.Rewards
	Notifier    Notifier

	now func() time.Time
}

// NewInviteReconciler creates an invite reconciler
func NewInviteReconciler(creditDB databases.InviteCreditDatabase, ledgerDB databases.InviteLedgerDatabase, milestoneDB databases.InviteMilestoneDatabase, xp *Ledger, rewards *config.Rewards, notifier Notifier) *InviteReconciler {
	return &InviteReconciler{
		CreditDB:    creditDB,
		LedgerDB:    ledgerDB,
		MilestoneDB: milestoneDB,
		XP:          xp,
		Rewards:     rewards,
		Notifier:    notifier,
		now:         time.Now,
	}
}

// OnMemberJoin files a pending credit when the platform resolved the join to
// a tracked invite token. Untracked joins are ignored; the gateway delivers
// at least once, so a duplicate join collapses into the credit already filed.
func (r *InviteReconciler) OnMemberJoin(ctx context.Context, ev models.MemberJoinEvent) error {
	if ev.InviteToken == "" || ev.InviterID == "" {
		return nil
	}

	joinedAt := ev.JoinedAt
	if joinedAt.IsZero() {
		joinedAt = r.now().UTC()
	}

	credit := models.PendingInviteCredit{
		CommunityID:     ev.CommunityID,
		NewMemberID:     ev.UserID,
		InviterID:       ev.InviterID,
		InviteToken:     ev.InviteToken,
		JoinedAt:        joinedAt,
		MemberCreatedAt: ev.AccountCreated,
		Status:          models.InviteCreditPending,
		UpdatedAt:       r.now().UTC(),
	}
	filed, err := r.CreditDB.FilePending(ctx, credit)
	if err != nil {
		return fmt.Errorf("failed to file pending invite credit: %w", err)
	}
	if !filed {
		// replayed delivery or a member the reconciler already judged
		zap.S().Debugw("duplicate referral join dropped",
			"communityId", ev.CommunityID,
			"newMemberId", ev.UserID,
		)
		return nil
	}

	zap.S().Infow("referral join recorded",
		"communityId", ev.CommunityID,
		"newMemberId", ev.UserID,
		"inviterId", ev.InviterID,
		"inviteToken", ev.InviteToken,
	)
	return nil
}

// OnMemberLeave rejects the member's pending credit when they leave before
// the minimum stay. A member who leaves after the stay elapsed keeps the
// credit pending for the next sweep to judge.
func (r *InviteReconciler) OnMemberLeave(ctx context.Context, ev models.MemberLeaveEvent) error {
	credit, err := r.CreditDB.FindOne(ctx, bson.M{
		"communityId": ev.CommunityID,
		"newMemberId": ev.UserID,
		"status":      models.InviteCreditPending,
	})
	if err == mongo.ErrNoDocuments {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to look up pending credit: %w", err)
	}

	leftAt := ev.LeftAt
	if leftAt.IsZero() {
		leftAt = r.now().UTC()
	}
	if leftAt.Sub(credit.JoinedAt) >= r.Rewards.InviteMinStay {
		return nil
	}

	moved, err := r.CreditDB.TransitionFromPending(ctx, credit.ID, models.InviteCreditRejected, models.RejectLeftEarly)
	if err != nil {
		return fmt.Errorf("failed to reject credit: %w", err)
	}
	if moved {
		zap.S().Infow("invite credit rejected",
			"communityId", ev.CommunityID,
			"newMemberId", ev.UserID,
			"reason", models.RejectLeftEarly,
		)
	}
	return nil
}

// Mature runs the validity predicates for a pending credit whose stay has
// elapsed and either credits the inviter or rejects the entry. Transient
// store failures return an error and leave the entry pending; predicate
// failures are terminal. The ledger upsert is the single dedupe point, so
// sweeping the same entry twice cannot credit twice.
func (r *InviteReconciler) Mature(ctx context.Context, credit models.PendingInviteCredit) error {
	if reason, err := r.checkPredicates(ctx, credit); err != nil {
		return err
	} else if reason != "" {
		moved, err := r.CreditDB.TransitionFromPending(ctx, credit.ID, models.InviteCreditRejected, reason)
		if err != nil {
			return fmt.Errorf("failed to persist rejection: %w", err)
		}
		if moved {
			zap.S().Warnw("invite credit rejected",
				"communityId", credit.CommunityID,
				"newMemberId", credit.NewMemberID,
				"inviterId", credit.InviterID,
				"reason", reason,
			)
		}
		return nil
	}

	entry := models.InviteLedgerEntry{
		EntryID:     uuid.New().String(),
		CommunityID: credit.CommunityID,
		NewMemberID: credit.NewMemberID,
		InviterID:   credit.InviterID,
		InviteToken: credit.InviteToken,
		Timestamp:   r.now().UTC(),
		Rewarded:    true,
	}
	claimed, err := r.LedgerDB.ClaimReward(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to claim invite reward: %w", err)
	}

	if claimed {
		if _, _, err := r.XP.Award(ctx, credit.CommunityID, credit.InviterID, r.Rewards.ReferralXP, models.SourceReferral); err != nil {
			return fmt.Errorf("failed to award referral xp: %w", err)
		}
		if err := r.evaluateLadder(ctx, credit.CommunityID, credit.InviterID); err != nil {
			return err
		}
	}

	if _, err := r.CreditDB.TransitionFromPending(ctx, credit.ID, models.InviteCreditMatured, ""); err != nil {
		return fmt.Errorf("failed to persist maturation: %w", err)
	}

	zap.S().Infow("invite credit matured",
		"communityId", credit.CommunityID,
		"newMemberId", credit.NewMemberID,
		"inviterId", credit.InviterID,
		"firstCredit", claimed,
	)
	return nil
}

// checkPredicates returns a rejection reason, empty when the credit is valid.
// An error means a transient store failure; the caller leaves the entry
// pending.
func (r *InviteReconciler) checkPredicates(ctx context.Context, credit models.PendingInviteCredit) (string, error) {
	if credit.NewMemberID == credit.InviterID {
		return models.RejectSelfInvite, nil
	}

	if credit.JoinedAt.Sub(credit.MemberCreatedAt) < r.Rewards.InviteMinAccountAge {
		return models.RejectAccountTooNew, nil
	}

	// rolling 24h cap on credits per inviter
	since := r.now().Add(-24 * time.Hour)
	recent, err := r.CreditDB.CountDocuments(ctx, bson.M{
		"communityId": credit.CommunityID,
		"inviterId":   credit.InviterID,
		"status":      models.InviteCreditMatured,
		"updatedAt":   bson.M{"$gt": since},
	})
	if err != nil {
		return "", fmt.Errorf("failed to count recent credits: %w", err)
	}
	if recent >= r.Rewards.InviteDailyCap {
		return models.RejectInviterCap, nil
	}

	// re-join farming: any earlier credit for this member, in any status
	seen, err := r.CreditDB.CountDocuments(ctx, bson.M{
		"communityId": credit.CommunityID,
		"newMemberId": credit.NewMemberID,
		"_id":         bson.M{"$ne": credit.ID},
	})
	if err != nil {
		return "", fmt.Errorf("failed to count prior credits: %w", err)
	}
	if seen > 0 {
		return models.RejectRejoinFarming, nil
	}

	// a ledger entry for the pair from a different inviter means the member
	// was already credited once in this community
	entries, err := r.LedgerDB.Find(ctx, bson.M{
		"communityId": credit.CommunityID,
		"newMemberId": credit.NewMemberID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to read invite ledger: %w", err)
	}
	for _, entry := range entries {
		if entry.InviterID != credit.InviterID {
			return models.RejectDuplicateEntry, nil
		}
	}
	return "", nil
}

// evaluateLadder awards any invite-milestone thresholds newly crossed by the
// inviter's valid-invite count, each exactly once.
func (r *InviteReconciler) evaluateLadder(ctx context.Context, communityID, inviterID string) error {
	valid, err := r.LedgerDB.CountDocuments(ctx, bson.M{
		"communityId": communityID,
		"inviterId":   inviterID,
		"rewarded":    true,
	})
	if err != nil {
		return fmt.Errorf("failed to count valid invites: %w", err)
	}

	for _, tier := range r.Rewards.InviteMilestones {
		if tier.Count > valid {
			continue
		}
		claimed, err := r.MilestoneDB.Claim(ctx, communityID, inviterID, tier.Count)
		if err != nil {
			return fmt.Errorf("failed to claim invite milestone: %w", err)
		}
		if !claimed {
			continue
		}

		if _, _, err := r.XP.Award(ctx, communityID, inviterID, tier.XP, models.SourceReferral); err != nil {
			return fmt.Errorf("failed to award invite milestone xp: %w", err)
		}

		zap.S().Infow("invite milestone reached",
			"communityId", communityID,
			"inviterId", inviterID,
			"threshold", tier.Count,
		)
		r.Notifier.InviteMilestone(models.InviteMilestoneEvent{
			CommunityID:  communityID,
			UserID:       inviterID,
			Threshold:    tier.Count,
			ValidInvites: valid,
			BonusXP:      tier.XP,
			RoleReward:   tier.RoleReward,
		})
	}
	return nil
}

// Stats returns the inviter's total and valid invite counts
func (r *InviteReconciler) Stats(ctx context.Context, communityID, userID string) (models.InviteStats, error) {
	total, err := r.CreditDB.CountDocuments(ctx, bson.M{
		"communityId": communityID,
		"inviterId":   userID,
	})
	if err != nil {
		return models.InviteStats{}, fmt.Errorf("failed to count invites: %w", err)
	}
	valid, err := r.LedgerDB.CountDocuments(ctx, bson.M{
		"communityId": communityID,
		"inviterId":   userID,
		"rewarded":    true,
	})
	if err != nil {
		return models.InviteStats{}, fmt.Errorf("failed to count valid invites: %w", err)
	}
	return models.InviteStats{TotalInvites: total, ValidInvites: valid}, nil
}
