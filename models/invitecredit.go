package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invite credit statuses. Matured and rejected are terminal.
const (
	InviteCreditPending  = "pending"
	InviteCreditMatured  = "matured"
	InviteCreditRejected = "rejected"
)

// Invite rejection reasons, logged on the terminal transition
const (
	RejectLeftEarly      = "left_early"
	RejectInviterCap     = "inviter_daily_cap"
	RejectAccountTooNew  = "account_too_new"
	RejectSelfInvite     = "self_invite"
	RejectRejoinFarming  = "previously_seen_member"
	RejectDuplicateEntry = "duplicate_ledger_entry"
)

// PendingInviteCredit represents the structure of a pending invite credit
// document in MongoDB. Created when a member arrives through a tracked invite
// token and held until the reconciliation sweep matures or rejects it.
type PendingInviteCredit struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CommunityID     string             `json:"communityId" bson:"communityId"`
	NewMemberID     string             `json:"newMemberId" bson:"newMemberId"`
	InviterID       string             `json:"inviterId" bson:"inviterId"`
	InviteToken     string             `json:"inviteToken" bson:"inviteToken"`
	JoinedAt        time.Time          `json:"joinedAt" bson:"joinedAt"`
	MemberCreatedAt time.Time          `json:"memberCreatedAt" bson:"memberCreatedAt"`
	Status          string             `json:"status" bson:"status"`
	RejectReason    string             `json:"rejectReason,omitempty" bson:"rejectReason,omitempty"`
	SweepFailures   int64              `json:"sweepFailures" bson:"sweepFailures"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}
