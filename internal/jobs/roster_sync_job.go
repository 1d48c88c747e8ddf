package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RosterSyncJob keeps the courier_roster read table aligned with the
// verified couriers. Runs every minute; the upsert is idempotent so
// overlapping runs are harmless.
type RosterSyncJob struct {
	handler commands.SyncCourierRosterCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRosterSyncJob creates the roster synchronization job.
func NewRosterSyncJob(handler commands.SyncCourierRosterCommandHandler, logger *slog.Logger) *RosterSyncJob {
	return &RosterSyncJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "roster_sync_job"),
	}
}

// Start begins the roster sync job to run every minute.
func (j *RosterSyncJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewSyncCourierRosterCommand()

		synced, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Roster sync job failed", "error", err)
			return
		}
		if synced > 0 {
			j.logger.InfoContext(ctx, "Roster synced", "couriers", synced)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Roster sync job started (running every minute)")
	return nil
}

// Stop stops the roster sync job.
func (j *RosterSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Roster sync job stopped")
}
