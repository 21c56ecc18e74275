package models

import "time"

// Platform events consumed from the gateway adapter. Delivery is
// at-least-once and unordered across users; every payload carries the
// community and user it belongs to.

// MessageEvent is emitted when a member sends a message
type MessageEvent struct {
	CommunityID   string `json:"communityId"`
	UserID        string `json:"userId"`
	ChannelID     string `json:"channelId"`
	MessageLength int    `json:"messageLength"`
	HasMedia      bool   `json:"hasMedia"`
}

// VoiceStateEvent is emitted when a member joins or leaves a voice channel,
// or toggles streaming/camera inside one
type VoiceStateEvent struct {
	CommunityID string `json:"communityId"`
	UserID      string `json:"userId"`
	ChannelID   string `json:"channelId"` // empty on leave
	Streaming   bool   `json:"streaming"`
	Camera      bool   `json:"camera"`
}

// PresenceEvent is emitted when a member starts or stops an activity
type PresenceEvent struct {
	CommunityID  string       `json:"communityId"`
	UserID       string       `json:"userId"`
	Kind         ActivityKind `json:"kind"`
	ActivityName string       `json:"activityName"` // empty on stop
}

// CommandEvent is emitted when a member invokes a bot command
type CommandEvent struct {
	CommunityID string `json:"communityId"`
	UserID      string `json:"userId"`
	Command     string `json:"command"`
	Elevated    bool   `json:"elevated"` // requires admin/mod permission
}

// MemberJoinEvent is emitted when a member joins the community. InviteToken
// and InviterID are set when the platform resolved the join to a tracked
// invite.
type MemberJoinEvent struct {
	CommunityID     string    `json:"communityId"`
	UserID          string    `json:"userId"`
	InviterID       string    `json:"inviterId,omitempty"`
	InviteToken     string    `json:"inviteToken,omitempty"`
	AccountCreated  time.Time `json:"accountCreated"`
	JoinedAt        time.Time `json:"joinedAt"`
}

// MemberLeaveEvent is emitted when a member leaves the community
type MemberLeaveEvent struct {
	CommunityID string    `json:"communityId"`
	UserID      string    `json:"userId"`
	LeftAt      time.Time `json:"leftAt"`
}

// BoostEvent is emitted when a member boosts the community
type BoostEvent struct {
	CommunityID string `json:"communityId"`
	UserID      string `json:"userId"`
}
