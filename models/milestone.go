package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MilestoneProgress represents the structure of a milestone progress document
// in MongoDB. CompletedMilestones is treated as a set; a threshold appears at
// most once.
type MilestoneProgress struct {
	ID                  primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CommunityID         string             `json:"communityId" bson:"communityId"`
	UserID              string             `json:"userId" bson:"userId"`
	Category            ActivityCategory   `json:"category" bson:"category"`
	CumulativeMinutes   int64              `json:"cumulativeMinutes" bson:"cumulativeMinutes"`
	CompletedMilestones []int64            `json:"completedMilestones" bson:"completedMilestones"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Completed reports whether the given threshold has already been awarded
func (m *MilestoneProgress) Completed(threshold int64) bool {
	for _, t := range m.CompletedMilestones {
		if t == threshold {
			return true
		}
	}
	return false
}
