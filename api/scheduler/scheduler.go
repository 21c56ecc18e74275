package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/guildline/engage-api/api"
	"github.com/guildline/engage-api/config"
	"github.com/guildline/engage-api/databases"
	"github.com/guildline/engage-api/engine"
	templates "github.com/guildline/engage-api/templates/html"
)

// Scheduler handles periodic background jobs: the hourly invite
// reconciliation sweep and the daily cleanup of in-memory session and
// rate-limiter state.
type Scheduler struct {
	cron       *cron.Cron
	CreditDB   databases.InviteCreditDatabase
	LockDB     databases.SchedulerLockDatabase
	Reconciler *engine.InviteReconciler
	Limiter    *engine.RateLimiter
	Sessions   *engine.SessionStore
	Rewards    *config.Rewards
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	creditDB databases.InviteCreditDatabase,
	lockDB databases.SchedulerLockDatabase,
	reconciler *engine.InviteReconciler,
	limiter *engine.RateLimiter,
	sessions *engine.SessionStore,
	rewards *config.Rewards,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		CreditDB:   creditDB,
		LockDB:     lockDB,
		Reconciler: reconciler,
		Limiter:    limiter,
		Sessions:   sessions,
		Rewards:    rewards,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Reconcile pending invite credits hourly
	_, err := s.cron.AddFunc("0 * * * *", s.reconcileInvites)
	if err != nil {
		zap.S().Errorw("failed to register invite reconciliation job", "error", err)
	}

	// Clear abandoned sessions and stale limiter entries daily at 4 AM UTC
	_, err = s.cron.AddFunc("0 4 * * *", s.sweepInMemoryState)
	if err != nil {
		zap.S().Errorw("failed to register cleanup job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Engagement scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Engagement scheduler stopped")
}

// reconcileInvites matures or rejects every pending credit whose minimum stay
// has elapsed. A transient failure on one entry bumps its failure counter and
// leaves it for the next sweep; the rest of the batch still runs.
func (s *Scheduler) reconcileInvites() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "invite_reconciliation_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for invite reconciliation", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Invite reconciliation already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "invite_reconciliation_job", s.instanceID)

	zap.S().Infow("Running invite reconciliation sweep", "instance", s.instanceID)

	due := time.Now().UTC().Add(-s.Rewards.InviteMinStay)
	credits, err := s.CreditDB.FindPendingDue(ctx, due)
	if err != nil {
		zap.S().Errorw("failed to load due invite credits", "error", err)
		return
	}

	matured := 0
	failed := 0
	for _, credit := range credits {
		entryCtx, entryCancel := api.WithQueryTimeout(ctx)
		err := s.Reconciler.Mature(entryCtx, credit)
		entryCancel()
		if err == nil {
			matured++
			continue
		}
		failed++
		zap.S().Errorw("invite credit sweep failed",
			"error", err,
			"creditId", credit.ID.Hex(),
			"communityId", credit.CommunityID,
		)

		countCtx, countCancel := api.WithQueryTimeout(ctx)
		failures, countErr := s.CreditDB.IncrementSweepFailures(countCtx, credit.ID)
		countCancel()
		if countErr != nil {
			zap.S().Errorw("failed to record sweep failure", "error", countErr, "creditId", credit.ID.Hex())
			continue
		}
		if failures == s.Rewards.EscalationSweeps {
			go s.sendEscalationEmail(credit.ID.Hex(), credit.CommunityID, failures)
		}
	}

	zap.S().Infow("Invite reconciliation sweep complete",
		"processed", len(credits),
		"resolved", matured,
		"failed", failed,
	)
}

// sweepInMemoryState runs on every instance since each holds its own session
// and limiter maps. No distributed lock needed.
func (s *Scheduler) sweepInMemoryState() {
	staleSessions := s.Sessions.SweepStale(24 * time.Hour)
	staleEntries := s.Limiter.Sweep()

	zap.S().Infow("In-memory state cleanup complete",
		"staleSessions", staleSessions,
		"staleLimiterEntries", staleEntries,
	)
}

// sendEscalationEmail alerts operators about a credit the sweep cannot
// resolve. Fired once, at the escalation threshold exactly.
func (s *Scheduler) sendEscalationEmail(creditID, communityID string, failures int64) {
	toEmail := os.Getenv("ALERT_EMAIL")
	if toEmail == "" {
		zap.S().Warnw("no ops alert email configured, skipping escalation", "creditId", creditID)
		return
	}

	subject := "Invite Credit Stuck in Reconciliation - Guildline"
	body := fmt.Sprintf(
		"An invite credit has failed %d consecutive reconciliation sweeps and needs manual review.\n\nCredit ID: %s\nCommunity: %s",
		failures, creditID, communityID,
	)

	from := mail.NewEmail("Guildline", "no-reply@guildline.gg")
	to := mail.NewEmail("Operations", toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, templates.RenderGenericEmail(subject, body))
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send escalation email", "error", err, "creditId", creditID)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
}
