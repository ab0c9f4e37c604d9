package jobs

import (
	"context"
	"time"

	"dnl-site-backend-go/internal/logger"

	"github.com/go-co-op/gocron/v2"
)

// Reconciler pushes or pulls settings between the local and remote tiers.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}

// SettingsSyncJob retries pending local settings writes and picks up remote
// edits.
type SettingsSyncJob struct {
	store    Reconciler
	interval time.Duration
	timeout  time.Duration
}

func NewSettingsSyncJob(store Reconciler, interval time.Duration) *SettingsSyncJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SettingsSyncJob{store: store, interval: interval, timeout: 30 * time.Second}
}

func (j *SettingsSyncJob) Name() string { return "settings_sync" }

func (j *SettingsSyncJob) Schedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *SettingsSyncJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if err := j.store.Reconcile(ctx); err != nil {
		logger.Warn("[jobs][settings_sync] %v", err)
	}
}

// Sweeper drops expired sessions.
type Sweeper interface {
	SweepExpired(now time.Time) int
}

type SessionSweepJob struct {
	auth     Sweeper
	interval time.Duration
	now      func() time.Time
}

func NewSessionSweepJob(auth Sweeper, interval time.Duration) *SessionSweepJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionSweepJob{auth: auth, interval: interval, now: time.Now}
}

func (j *SessionSweepJob) Name() string { return "session_sweep" }

func (j *SessionSweepJob) Schedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

func (j *SessionSweepJob) Execute() {
	if n := j.auth.SweepExpired(j.now()); n > 0 {
		logger.Info("[jobs][session_sweep] removed %d expired sessions", n)
	}
}
