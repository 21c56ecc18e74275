package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/api"
	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/engine"
	"github.com/guildline/engage-api/models"
)

// Engagement exported for testing purposes
type Engagement struct {
	Ledger     *engine.Ledger
	Milestones *engine.MilestoneTracker
	Streaks    *engine.StreakTracker
	Reconciler *engine.InviteReconciler
}

// LevelHandler returns a member's xp total and derived level
func (e Engagement) LevelHandler(w http.ResponseWriter, r *http.Request) {
	communityID := mux.Vars(r)["community_id"]
	userID := mux.Vars(r)["user_id"]

	zap.S().Debugf("community_id: %v, user_id: %v", communityID, userID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	xp, level, err := e.Ledger.GetLevel(ctx, communityID, userID)
	if err != nil {
		config.ErrorStatus("failed to get member level", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]int64{"xp": xp, "level": level})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RankHandler returns a member's leaderboard position in the community
func (e Engagement) RankHandler(w http.ResponseWriter, r *http.Request) {
	communityID := mux.Vars(r)["community_id"]
	userID := mux.Vars(r)["user_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	rank, xp, level, err := e.Ledger.GetRank(ctx, communityID, userID)
	if err != nil {
		config.ErrorStatus("failed to get member rank", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(map[string]int64{"rank": rank, "xp": xp, "level": level})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LeaderboardHandler returns the community's top members by xp
func (e Engagement) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	communityID := mux.Vars(r)["community_id"]

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	records, err := e.Ledger.Leaderboard(ctx, communityID, int64(limit))
	if err != nil {
		config.ErrorStatus("failed to get leaderboard", http.StatusInternalServerError, w, err)
		return
	}
	if len(records) == 0 {
		records = []models.XPRecord{}
	}

	type entry struct {
		Rank   int64  `json:"rank"`
		UserID string `json:"userId"`
		XP     int64  `json:"xp"`
		Level  int64  `json:"level"`
	}
	entries := make([]entry, 0, len(records))
	for i, rec := range records {
		entries = append(entries, entry{
			Rank:   int64(i + 1),
			UserID: rec.UserID,
			XP:     rec.XP,
			Level:  engine.Level(rec.XP),
		})
	}

	b, err := json.Marshal(map[string]interface{}{"data": entries, "limit": limit})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MilestonesHandler returns a member's cumulative minutes and completed
// milestones for one activity category
func (e Engagement) MilestonesHandler(w http.ResponseWriter, r *http.Request) {
	communityID := mux.Vars(r)["community_id"]
	userID := mux.Vars(r)["user_id"]
	category := models.ActivityCategory(mux.Vars(r)["category"])

	if !category.Valid() {
		config.ErrorStatus("unknown activity category", http.StatusBadRequest, w, engine.ErrUnknownCategory)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	progress, err := e.Milestones.Progress(ctx, communityID, userID, category)
	if err != nil {
		config.ErrorStatus("failed to get milestone progress", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(progress)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// StreaksHandler returns a member's current and highest streak for one
// streak type
func (e Engagement) StreaksHandler(w http.ResponseWriter, r *http.Request) {
	communityID := mux.Vars(r)["community_id"]
	userID := mux.Vars(r)["user_id"]
	streakType := models.StreakType(mux.Vars(r)["streak_type"])

	if !streakType.Valid() {
		config.ErrorStatus("unknown streak type", http.StatusBadRequest, w, engine.ErrUnknownStreakType)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	state, err := e.Streaks.Streak(ctx, communityID, userID, streakType)
	if err != nil {
		config.ErrorStatus("failed to get streak", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(state)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// InviteStatsHandler returns a member's total and valid invite counts
func (e Engagement) InviteStatsHandler(w http.ResponseWriter, r *http.Request) {
	communityID := mux.Vars(r)["community_id"]
	userID := mux.Vars(r)["user_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := e.Reconciler.Stats(ctx, communityID, userID)
	if err != nil {
		config.ErrorStatus("failed to get invite stats", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
