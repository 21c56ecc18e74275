package config

import (
	"os"
	"strconv"
	"time"

	"github.com/guildline/engage-api/models"
)

// MilestoneTier is one rung of a cumulative-duration ladder
type MilestoneTier struct {
	Minutes int64
	XP      int64
}

// StreakTier is one rung of a continuity ladder
type StreakTier struct {
	Days int64
	XP   int64
}

// InviteTier is one rung of the invite-milestone ladder. RoleReward is the
// role the role-assignment collaborator grants, empty for none.
type InviteTier struct {
	Count      int64
	XP         int64
	RoleReward string
}

// Rewards holds every numeric tuning knob the engine uses. The shipped
// defaults match the live bot; deploy-time overrides come from the
// environment.
type Rewards struct {
	// message awards
	MessageXPMin           int64
	MessageXPMax           int64
	MessageLengthThreshold int
	MessageLengthBonus     int64
	MessageMediaBonus      int64

	// voice session awards
	VoiceXPPerMinute int64
	VoiceMaxMinutes  int64
	VoiceStreamBonus int64
	VoiceCameraBonus int64

	// presence session awards
	PresenceMinDuration time.Duration
	PresenceSessionCap  int64
	ActivityMultipliers map[models.ActivityKind]float64
	// flat bonuses keyed by lowercase application name
	AppBonuses map[string]int64
	// lowercase application names whose playing sessions count toward the
	// development milestone ladder instead of gaming
	DevApps map[string]bool

	// command awards
	CommandXPMin         int64
	CommandXPMax         int64
	CommandElevatedBonus int64

	// direct awards
	BoostXP    int64
	ReferralXP int64

	// rate limit windows per source
	Cooldowns map[models.XPSource]time.Duration

	// ladders
	Milestones map[models.ActivityCategory][]MilestoneTier
	Streaks    map[models.StreakType][]StreakTier

	// invite reconciliation policy
	InviteMinStay       time.Duration
	InviteMinAccountAge time.Duration
	InviteDailyCap      int64
	InviteMilestones    []InviteTier

	// sweeps a pending credit may fail before operators are alerted
	EscalationSweeps int64
}

// DefaultRewards returns the reward table with shipped defaults, applying any
// environment overrides for the invite policy knobs.
func DefaultRewards() *Rewards {
	r := &Rewards{
		MessageXPMin:           15,
		MessageXPMax:           25,
		MessageLengthThreshold: 150,
		MessageLengthBonus:     10,
		MessageMediaBonus:      10,

		VoiceXPPerMinute: 1,
		VoiceMaxMinutes:  30,
		VoiceStreamBonus: 10,
		VoiceCameraBonus: 5,

		PresenceMinDuration: 5 * time.Minute,
		PresenceSessionCap:  60,
		ActivityMultipliers: map[models.ActivityKind]float64{
			models.ActivityPlaying:   1.0,
			models.ActivityStreaming: 1.5,
			models.ActivityListening: 0.5,
			models.ActivityWatching:  0.5,
			models.ActivityCustom:    0.25,
			models.ActivityCompeting: 1.25,
		},
		AppBonuses: map[string]int64{
			"visual studio code": 5,
			"intellij idea":      5,
			"neovim":             5,
			"obs studio":         5,
		},
		DevApps: map[string]bool{
			"visual studio code": true,
			"intellij idea":      true,
			"neovim":             true,
		},

		CommandXPMin:         5,
		CommandXPMax:         10,
		CommandElevatedBonus: 5,

		BoostXP:    200,
		ReferralXP: 100,

		Cooldowns: map[models.XPSource]time.Duration{
			models.SourceMessage:  60 * time.Second,
			models.SourceVoice:    300 * time.Second,
			models.SourcePresence: 300 * time.Second,
			models.SourceCommand:  300 * time.Second,
		},

		Milestones: map[models.ActivityCategory][]MilestoneTier{
			models.CategoryGaming: {
				{Minutes: 60, XP: 50},
				{Minutes: 180, XP: 100},
				{Minutes: 360, XP: 200},
			},
			models.CategoryDevelopment: {
				{Minutes: 120, XP: 75},
				{Minutes: 300, XP: 150},
				{Minutes: 600, XP: 300},
			},
			models.CategoryStreaming: {
				{Minutes: 60, XP: 50},
				{Minutes: 240, XP: 125},
				{Minutes: 480, XP: 250},
			},
		},
		Streaks: map[models.StreakType][]StreakTier{
			models.StreakDaily: {
				{Days: 3, XP: 30},
				{Days: 7, XP: 75},
				{Days: 30, XP: 300},
			},
			models.StreakActivity: {
				{Days: 5, XP: 50},
				{Days: 10, XP: 100},
				{Days: 20, XP: 200},
			},
		},

		InviteMinStay:       72 * time.Hour,
		InviteMinAccountAge: 7 * 24 * time.Hour,
		InviteDailyCap:      5,
		InviteMilestones: []InviteTier{
			{Count: 5, XP: 150, RoleReward: "recruiter"},
			{Count: 10, XP: 300, RoleReward: "connector"},
			{Count: 25, XP: 750, RoleReward: "ambassador"},
			{Count: 50, XP: 1500, RoleReward: "legend"},
		},

		EscalationSweeps: 12,
	}

	if hours := envInt64("INVITE_MIN_STAY_HOURS"); hours > 0 {
		r.InviteMinStay = time.Duration(hours) * time.Hour
	}
	if days := envInt64("INVITE_MIN_ACCOUNT_AGE_DAYS"); days > 0 {
		r.InviteMinAccountAge = time.Duration(days) * 24 * time.Hour
	}
	if cap := envInt64("INVITE_DAILY_CAP"); cap > 0 {
		r.InviteDailyCap = cap
	}
	return r
}

func envInt64(key string) int64 {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
