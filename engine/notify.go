package engine

import "github.com/guildline/engage-api/models"

// Notifier receives the engine's event emissions for the notification and
// role-assignment collaborators. Implementations must not block; every event
// is emitted only after the award behind it durably persisted.
type Notifier interface {
	LevelUp(event models.LevelUpEvent)
	MilestoneReached(event models.MilestoneReachedEvent)
	StreakReward(event models.StreakRewardEvent)
	InviteMilestone(event models.InviteMilestoneEvent)
}

// NopNotifier discards all events. Used in tests and as the default until a
// real notifier is wired.
type NopNotifier struct{}

// LevelUp implements Notifier
func (NopNotifier) LevelUp(models.LevelUpEvent) {}

// MilestoneReached implements Notifier
func (NopNotifier) MilestoneReached(models.MilestoneReachedEvent) {}

// StreakReward implements Notifier
func (NopNotifier) StreakReward(models.StreakRewardEvent) {}

// InviteMilestone implements Notifier
func (NopNotifier) InviteMilestone(models.InviteMilestoneEvent) {}
