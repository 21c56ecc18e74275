package models

// Engine event emissions for the notification collaborator. Each payload is
// self-contained so the renderer never has to do a second lookup.

// LevelUpEvent fires when an award crosses a level boundary
type LevelUpEvent struct {
	CommunityID string   `json:"communityId"`
	UserID      string   `json:"userId"`
	NewLevel    int64    `json:"newLevel"`
	TotalXP     int64    `json:"totalXp"`
	Source      XPSource `json:"source"`
}

// MilestoneReachedEvent fires when a cumulative-duration threshold is crossed
type MilestoneReachedEvent struct {
	CommunityID      string           `json:"communityId"`
	UserID           string           `json:"userId"`
	Category         ActivityCategory `json:"category"`
	ThresholdMinutes int64            `json:"thresholdMinutes"`
	BonusXP          int64            `json:"bonusXp"`
}

// StreakRewardEvent fires when a continuity threshold is crossed
type StreakRewardEvent struct {
	CommunityID   string     `json:"communityId"`
	UserID        string     `json:"userId"`
	StreakType    StreakType `json:"streakType"`
	Threshold     int64      `json:"threshold"`
	CurrentStreak int64      `json:"currentStreak"`
	BonusXP       int64      `json:"bonusXp"`
}

// InviteMilestoneEvent fires when an inviter's valid-invite count crosses a
// ladder threshold. RoleReward names the role the role-assignment
// collaborator should grant, empty when the threshold carries none.
type InviteMilestoneEvent struct {
	CommunityID  string `json:"communityId"`
	UserID       string `json:"userId"`
	Threshold    int64  `json:"threshold"`
	ValidInvites int64  `json:"validInvites"`
	BonusXP      int64  `json:"bonusXp"`
	RoleReward   string `json:"roleReward,omitempty"`
}

// InviteStats is the collaborator-facing invite summary
type InviteStats struct {
	TotalInvites int64 `json:"totalInvites"`
	ValidInvites int64 `json:"validInvites"`
}
