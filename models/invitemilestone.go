package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InviteMilestoneRecord represents the structure of an invite milestone
// document in MongoDB. Append-only, one row per threshold ever awarded to a
// user; the unique index on (communityId, userId, threshold) is the dedupe key
// for the invite-reward ladder.
type InviteMilestoneRecord struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CommunityID string             `json:"communityId" bson:"communityId" index:"communityId,userId,threshold:unique"`
	UserID      string             `json:"userId" bson:"userId"`
	Threshold   int64              `json:"threshold" bson:"threshold"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
}
