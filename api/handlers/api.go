package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/api"
	"github.com/guildline/engage-api/api/scheduler"
	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases"
	"github.com/guildline/engage-api/engine"
	"github.com/guildline/engage-api/models"
)

// App stores the router, db connection and engine components, so it can be
// reused
type App struct {
	Router     *mux.Router
	Config     config.Config
	Rewards    *config.Rewards
	Normalizer *engine.Normalizer
	Scheduler  *scheduler.Scheduler
	dbHelper   databases.DatabaseHelper
	engagement Engagement
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareAuth{}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	e := a.engagement

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	// socket.io feed for the notification and role-assignment collaborators
	r.Handle("/socket.io/", InitializeSocketIO())

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.TimeoutMiddleware(30 * time.Second))

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/community/{community_id}/members/{user_id}/level", api.Middleware(http.HandlerFunc(e.LevelHandler))).Methods("GET")
	apiCreate.Handle("/community/{community_id}/members/{user_id}/rank", api.Middleware(http.HandlerFunc(e.RankHandler))).Methods("GET")
	apiCreate.Handle("/community/{community_id}/members/{user_id}/milestones/{category}", api.Middleware(http.HandlerFunc(e.MilestonesHandler))).Methods("GET")
	apiCreate.Handle("/community/{community_id}/members/{user_id}/streaks/{streak_type}", api.Middleware(http.HandlerFunc(e.StreaksHandler))).Methods("GET")
	apiCreate.Handle("/community/{community_id}/members/{user_id}/invites", api.Middleware(http.HandlerFunc(e.InviteStatsHandler))).Methods("GET")
	apiCreate.Handle("/community/{community_id}/leaderboard", api.Middleware(http.HandlerFunc(e.LeaderboardHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database, assemble the
// engine and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("engage-api has connected to the database")

	a.Rewards = config.DefaultRewards()

	notifier := SocketNotifier{}
	ledger := engine.NewLedger(databases.NewXPRecordDatabase(a.dbHelper), notifier)
	milestones := engine.NewMilestoneTracker(databases.NewMilestoneProgressDatabase(a.dbHelper), ledger, a.Rewards, notifier)
	streaks := engine.NewStreakTracker(databases.NewStreakStateDatabase(a.dbHelper), ledger, a.Rewards, notifier)

	creditDB := databases.NewInviteCreditDatabase(a.dbHelper)
	reconciler := engine.NewInviteReconciler(
		creditDB,
		databases.NewInviteLedgerDatabase(a.dbHelper),
		databases.NewInviteMilestoneDatabase(a.dbHelper),
		ledger,
		a.Rewards,
		notifier,
	)

	limiter := engine.NewRateLimiter(a.Rewards.Cooldowns)
	sessions := engine.NewSessionStore()

	a.Normalizer = engine.NewNormalizer(limiter, sessions, ledger, milestones, streaks, reconciler, a.Rewards)
	a.engagement = Engagement{
		Ledger:     ledger,
		Milestones: milestones,
		Streaks:    streaks,
		Reconciler: reconciler,
	}

	a.Scheduler = scheduler.NewScheduler(
		creditDB,
		databases.NewSchedulerLockDatabase(a.dbHelper),
		reconciler,
		limiter,
		sessions,
		a.Rewards,
	)

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
