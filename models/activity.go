package models

// ActivityKind is the closed set of presence activity kinds reported by the
// chat platform. The numeric values mirror the platform's activity type codes.
type ActivityKind int

// Activity kinds
const (
	ActivityPlaying ActivityKind = iota
	ActivityStreaming
	ActivityListening
	ActivityWatching
	ActivityCustom
	ActivityCompeting
)

// KnownActivityKinds lists every kind the engine scores
var KnownActivityKinds = []ActivityKind{
	ActivityPlaying,
	ActivityStreaming,
	ActivityListening,
	ActivityWatching,
	ActivityCustom,
	ActivityCompeting,
}

func (k ActivityKind) String() string {
	switch k {
	case ActivityPlaying:
		return "playing"
	case ActivityStreaming:
		return "streaming"
	case ActivityListening:
		return "listening"
	case ActivityWatching:
		return "watching"
	case ActivityCustom:
		return "custom"
	case ActivityCompeting:
		return "competing"
	}
	return "unknown"
}

// Valid reports whether the kind is one the engine knows how to score
func (k ActivityKind) Valid() bool {
	return k >= ActivityPlaying && k <= ActivityCompeting
}

// ActivityCategory groups cumulative-duration milestones
type ActivityCategory string

// Milestone categories
const (
	CategoryGaming      ActivityCategory = "gaming"
	CategoryDevelopment ActivityCategory = "development"
	CategoryStreaming   ActivityCategory = "streaming"
)

// Valid reports whether the category has a milestone ladder
func (c ActivityCategory) Valid() bool {
	switch c {
	case CategoryGaming, CategoryDevelopment, CategoryStreaming:
		return true
	}
	return false
}

// StreakType identifies a continuity ladder
type StreakType string

// Streak types
const (
	StreakDaily    StreakType = "daily"
	StreakActivity StreakType = "activity"
)

// Valid reports whether the streak type has a reward ladder
func (t StreakType) Valid() bool {
	return t == StreakDaily || t == StreakActivity
}

// XPSource labels where an award came from. Metadata for logging only, never
// used for dedupe.
type XPSource string

// XP sources
const (
	SourceMessage   XPSource = "message"
	SourceVoice     XPSource = "voice"
	SourcePresence  XPSource = "presence"
	SourceCommand   XPSource = "command"
	SourceBoost     XPSource = "boost"
	SourceReferral  XPSource = "referral"
	SourceMilestone XPSource = "milestone"
	SourceStreak    XPSource = "streak"
)
