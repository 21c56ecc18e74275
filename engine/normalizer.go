package engine

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/models"
)

// Normalizer converts raw platform events into xp awards. Every handler
// isolates its own failures: a bad event is logged and dropped, never allowed
// to abort processing of unrelated events.
type Normalizer struct {
	Limiter    *RateLimiter
	Sessions   *SessionStore
	Ledger     *Ledger
	Milestones *MilestoneTracker
	Streaks    *StreakTracker
	Reconciler *InviteReconciler
	Rewards    *config.Rewards

	randRange func(min, max int64) int64
	now       func() time.Time
}

// NewNormalizer creates an activity normalizer wired to the given components
func NewNormalizer(limiter *RateLimiter, sessions *SessionStore, ledger *Ledger, milestones *MilestoneTracker, streaks *StreakTracker, reconciler *InviteReconciler, rewards *config.Rewards) *Normalizer {
	return &Normalizer{
		Limiter:    limiter,
		Sessions:   sessions,
		Ledger:     ledger,
		Milestones: milestones,
		Streaks:    streaks,
		Reconciler: reconciler,
		Rewards:    rewards,
		randRange:  randRange,
		now:        time.Now,
	}
}

func randRange(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + rand.Int63n(max-min+1)
}

// HandleMessage awards message xp, one award per rate-limit window no matter
// how many messages land inside it, and advances the daily streak.
func (n *Normalizer) HandleMessage(ctx context.Context, ev models.MessageEvent) {
	amount := n.randRange(n.Rewards.MessageXPMin, n.Rewards.MessageXPMax)
	if ev.MessageLength > n.Rewards.MessageLengthThreshold {
		amount += n.Rewards.MessageLengthBonus
	}
	if ev.HasMedia {
		amount += n.Rewards.MessageMediaBonus
	}

	if !n.Limiter.Allow(ev.CommunityID, ev.UserID, models.SourceMessage) {
		zap.S().Debugw("message award rate limited", "communityId", ev.CommunityID, "userId", ev.UserID)
		return
	}

	if _, _, err := n.Ledger.Award(ctx, ev.CommunityID, ev.UserID, amount, models.SourceMessage); err != nil {
		zap.S().Warnw("failed to award message xp", "error", err, "userId", ev.UserID)
		return
	}

	if err := n.Streaks.TouchIfNewDay(ctx, ev.CommunityID, ev.UserID, models.StreakDaily); err != nil {
		zap.S().Warnw("failed to touch daily streak", "error", err, "userId", ev.UserID)
	}
}

// HandleVoiceState opens a session on join, keeps the streaming/camera flags
// sticky while the member stays, and settles the award when they leave.
func (n *Normalizer) HandleVoiceState(ctx context.Context, ev models.VoiceStateEvent) {
	if ev.ChannelID != "" {
		n.Sessions.UpsertVoice(ev.CommunityID, ev.UserID, ev.ChannelID, ev.Streaming, ev.Camera)
		return
	}

	sess, ok := n.Sessions.EndVoice(ev.CommunityID, ev.UserID)
	if !ok {
		// leave without a tracked join, e.g. after a restart
		zap.S().Debugw("voice leave without session", "communityId", ev.CommunityID, "userId", ev.UserID)
		return
	}

	minutes := int64(n.now().Sub(sess.JoinedAt).Minutes())
	if minutes <= 0 {
		return
	}
	if minutes > n.Rewards.VoiceMaxMinutes {
		minutes = n.Rewards.VoiceMaxMinutes
	}
	amount := minutes * n.Rewards.VoiceXPPerMinute
	if sess.Streaming {
		amount += n.Rewards.VoiceStreamBonus
	}
	if sess.Camera {
		amount += n.Rewards.VoiceCameraBonus
	}

	if !n.Limiter.Allow(ev.CommunityID, ev.UserID, models.SourceVoice) {
		zap.S().Debugw("voice award rate limited", "communityId", ev.CommunityID, "userId", ev.UserID)
		return
	}

	if _, _, err := n.Ledger.Award(ctx, ev.CommunityID, ev.UserID, amount, models.SourceVoice); err != nil {
		zap.S().Warnw("failed to award voice xp", "error", err, "userId", ev.UserID)
	}
}

// HandlePresence opens a session when an activity starts and settles the
// award, milestone progress and activity streak when it stops. Sessions below
// the minimum duration are discarded without touching the store.
func (n *Normalizer) HandlePresence(ctx context.Context, ev models.PresenceEvent) {
	if ev.ActivityName != "" {
		if !ev.Kind.Valid() {
			zap.S().Debugw("ignoring unknown activity kind", "kind", int(ev.Kind), "userId", ev.UserID)
			return
		}
		n.Sessions.StartPresence(ev.CommunityID, ev.UserID, ev.Kind, ev.ActivityName)
		return
	}

	sess, ok := n.Sessions.EndPresence(ev.CommunityID, ev.UserID)
	if !ok {
		return
	}

	duration := n.now().Sub(sess.StartedAt)
	if duration < n.Rewards.PresenceMinDuration {
		zap.S().Debugw("presence session below minimum, discarded",
			"communityId", ev.CommunityID,
			"userId", ev.UserID,
			"duration", duration,
		)
		return
	}

	minutes := int64(duration.Minutes())
	amount := n.presenceAmount(sess, minutes)
	if amount <= 0 {
		return
	}

	if !n.Limiter.Allow(ev.CommunityID, ev.UserID, models.SourcePresence) {
		zap.S().Debugw("presence award rate limited", "communityId", ev.CommunityID, "userId", ev.UserID)
		return
	}

	if _, _, err := n.Ledger.Award(ctx, ev.CommunityID, ev.UserID, amount, models.SourcePresence); err != nil {
		zap.S().Warnw("failed to award presence xp", "error", err, "userId", ev.UserID)
		return
	}

	if category, ok := n.categoryFor(sess); ok {
		if err := n.Milestones.RecordProgress(ctx, ev.CommunityID, ev.UserID, category, minutes); err != nil {
			zap.S().Warnw("failed to record milestone progress", "error", err, "userId", ev.UserID)
		}
	}

	if err := n.Streaks.TouchIfNewDay(ctx, ev.CommunityID, ev.UserID, models.StreakActivity); err != nil {
		zap.S().Warnw("failed to touch activity streak", "error", err, "userId", ev.UserID)
	}
}

func (n *Normalizer) presenceAmount(sess *PresenceSession, minutes int64) int64 {
	multiplier := n.Rewards.ActivityMultipliers[sess.Kind]
	amount := int64(float64(minutes) * multiplier)
	if amount > n.Rewards.PresenceSessionCap {
		amount = n.Rewards.PresenceSessionCap
	}
	amount += n.Rewards.AppBonuses[strings.ToLower(sess.Name)]
	return amount
}

// categoryFor maps a presence session onto a milestone category. Streaming
// sessions feed the streaming ladder; playing sessions feed development when
// the application is a known dev tool, gaming otherwise.
func (n *Normalizer) categoryFor(sess *PresenceSession) (models.ActivityCategory, bool) {
	switch sess.Kind {
	case models.ActivityStreaming:
		return models.CategoryStreaming, true
	case models.ActivityPlaying:
		if n.Rewards.DevApps[strings.ToLower(sess.Name)] {
			return models.CategoryDevelopment, true
		}
		return models.CategoryGaming, true
	}
	return "", false
}

// HandleCommand awards command xp with a bonus for elevated commands
func (n *Normalizer) HandleCommand(ctx context.Context, ev models.CommandEvent) {
	amount := n.randRange(n.Rewards.CommandXPMin, n.Rewards.CommandXPMax)
	if ev.Elevated {
		amount += n.Rewards.CommandElevatedBonus
	}

	if !n.Limiter.Allow(ev.CommunityID, ev.UserID, models.SourceCommand) {
		zap.S().Debugw("command award rate limited", "communityId", ev.CommunityID, "userId", ev.UserID)
		return
	}

	if _, _, err := n.Ledger.Award(ctx, ev.CommunityID, ev.UserID, amount, models.SourceCommand); err != nil {
		zap.S().Warnw("failed to award command xp", "error", err, "userId", ev.UserID)
	}
}

// HandleBoost is a direct one-shot award with no holding period
func (n *Normalizer) HandleBoost(ctx context.Context, ev models.BoostEvent) {
	if _, _, err := n.Ledger.Award(ctx, ev.CommunityID, ev.UserID, n.Rewards.BoostXP, models.SourceBoost); err != nil {
		zap.S().Warnw("failed to award boost xp", "error", err, "userId", ev.UserID)
	}
}

// HandleMemberJoin records a referral join for deferred reconciliation
func (n *Normalizer) HandleMemberJoin(ctx context.Context, ev models.MemberJoinEvent) {
	if err := n.Reconciler.OnMemberJoin(ctx, ev); err != nil {
		zap.S().Warnw("failed to record referral join", "error", err, "userId", ev.UserID)
	}
}

// HandleMemberLeave rejects a departing member's pending referral credit
func (n *Normalizer) HandleMemberLeave(ctx context.Context, ev models.MemberLeaveEvent) {
	if err := n.Reconciler.OnMemberLeave(ctx, ev); err != nil {
		zap.S().Warnw("failed to process member leave", "error", err, "userId", ev.UserID)
	}
}
