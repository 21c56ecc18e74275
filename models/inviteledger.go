package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InviteLedgerEntry represents the structure of an invite ledger document in
// MongoDB. Append-only audit trail with a unique index on
// (communityId, newMemberId); Rewarded flips false to true exactly once.
type InviteLedgerEntry struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	EntryID     string             `json:"entryId" bson:"entryId"`
	CommunityID string             `json:"communityId" bson:"communityId" index:"communityId,newMemberId:unique"`
	NewMemberID string             `json:"newMemberId" bson:"newMemberId"`
	InviterID   string             `json:"inviterId" bson:"inviterId"`
	InviteToken string             `json:"inviteToken" bson:"inviteToken"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
	Rewarded    bool               `json:"rewarded" bson:"rewarded"`
}
