package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/guildline/engage-api/models"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
}

func TestErrorStatus(t *testing.T) {

	ErrorStatus("error it borked", http.StatusBadRequest, httptest.NewRecorder(), errors.New("bad request"))
	assert.True(t, true)
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}

func TestDefaultRewardsShippedValues(t *testing.T) {
	r := DefaultRewards()

	assert.EqualValues(t, 15, r.MessageXPMin)
	assert.EqualValues(t, 25, r.MessageXPMax)
	assert.EqualValues(t, 30, r.VoiceMaxMinutes)
	assert.EqualValues(t, 200, r.BoostXP)
	assert.EqualValues(t, 100, r.ReferralXP)
	assert.Equal(t, 72*time.Hour, r.InviteMinStay)
	assert.Equal(t, 60*time.Second, r.Cooldowns[models.SourceMessage])
	assert.Equal(t, 300*time.Second, r.Cooldowns[models.SourceVoice])
	assert.Len(t, r.Milestones[models.CategoryGaming], 3)
	assert.Len(t, r.InviteMilestones, 4)
}

func TestDefaultRewardsEnvOverrides(t *testing.T) {
	os.Setenv("INVITE_MIN_STAY_HOURS", "24")
	os.Setenv("INVITE_DAILY_CAP", "10")
	defer os.Unsetenv("INVITE_MIN_STAY_HOURS")
	defer os.Unsetenv("INVITE_DAILY_CAP")

	r := DefaultRewards()

	assert.Equal(t, 24*time.Hour, r.InviteMinStay)
	assert.EqualValues(t, 10, r.InviteDailyCap)
}

func TestDefaultRewardsIgnoresBadOverride(t *testing.T) {
	os.Setenv("INVITE_DAILY_CAP", "not-a-number")
	defer os.Unsetenv("INVITE_DAILY_CAP")

	r := DefaultRewards()

	assert.EqualValues(t, 5, r.InviteDailyCap)
}
