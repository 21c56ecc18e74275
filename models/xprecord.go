package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XPRecord represents the structure of an xp record document in MongoDB.
// One record per (community, member); xp only moves down through explicit
// administrative correction.
type XPRecord struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CommunityID string             `json:"communityId" bson:"communityId" index:"communityId,xp"`
	UserID      string             `json:"userId" bson:"userId"`
	XP          int64              `json:"xp" bson:"xp"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
