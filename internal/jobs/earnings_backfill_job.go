package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EarningsBackfillJob repairs delivered orders that predate earning
// tracking. Runs hourly; once the backlog is repaired every run is a no-op.
type EarningsBackfillJob struct {
	handler commands.BackfillEarningsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEarningsBackfillJob creates the earnings backfill job.
func NewEarningsBackfillJob(handler commands.BackfillEarningsCommandHandler, logger *slog.Logger) *EarningsBackfillJob {
	return &EarningsBackfillJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "earnings_backfill_job"),
	}
}

// Start begins the backfill job to run hourly.
func (j *EarningsBackfillJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewBackfillEarningsCommand()

		repaired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Earnings backfill job failed", "error", err)
			return
		}
		if repaired > 0 {
			j.logger.InfoContext(ctx, "Earnings backfilled", "orders", repaired)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Earnings backfill job started (running hourly)")
	return nil
}

// Stop stops the backfill job.
func (j *EarningsBackfillJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Earnings backfill job stopped")
}
