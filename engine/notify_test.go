package engine

import (
	"sync"

	"github.com/guildline/engage-api/models"
)

// recordingNotifier captures emitted events for assertions
type recordingNotifier struct {
	mu         sync.Mutex
	levelUps   []models.LevelUpEvent
	milestones []models.MilestoneReachedEvent
	streaks    []models.StreakRewardEvent
	invites    []models.InviteMilestoneEvent
}

func (r *recordingNotifier) LevelUp(event models.LevelUpEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levelUps = append(r.levelUps, event)
}

func (r *recordingNotifier) MilestoneReached(event models.MilestoneReachedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.milestones = append(r.milestones, event)
}

func (r *recordingNotifier) StreakReward(event models.StreakRewardEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streaks = append(r.streaks, event)
}

func (r *recordingNotifier) InviteMilestone(event models.InviteMilestoneEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invites = append(r.invites, event)
}
