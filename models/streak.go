package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StreakState represents the structure of a streak state document in MongoDB.
// CurrentStreak resets to 1 when the gap since LastActivityAt exceeds 24
// hours; HighestStreak never decreases.
type StreakState struct {
	ID               primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	CommunityID      string             `json:"communityId" bson:"communityId"`
	UserID           string             `json:"userId" bson:"userId"`
	StreakType       StreakType         `json:"streakType" bson:"streakType"`
	CurrentStreak    int64              `json:"currentStreak" bson:"currentStreak"`
	HighestStreak    int64              `json:"highestStreak" bson:"highestStreak"`
	LastActivityAt   time.Time          `json:"lastActivityAt" bson:"lastActivityAt"`
	CompletedRewards []int64            `json:"completedRewards" bson:"completedRewards"`
}

// Rewarded reports whether the given threshold has already been awarded
func (s *StreakState) Rewarded(threshold int64) bool {
	for _, t := range s.CompletedRewards {
		if t == threshold {
			return true
		}
	}
	return false
}
