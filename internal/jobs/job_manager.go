package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderDispatchJob    *OrderDispatchJob
	rosterSyncJob       *RosterSyncJob
	earningsBackfillJob *EarningsBackfillJob
}

// NewJobManager creates a job manager with all required jobs wired up.
func NewJobManager(
	registry ports.AvailabilityRegistry,
	pendingOrders queries.GetPendingOrdersQueryHandler,
	assignOrder commands.AssignOrderCommandHandler,
	rosterSync commands.SyncCourierRosterCommandHandler,
	earningsBackfill commands.BackfillEarningsCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderDispatchJob:    NewOrderDispatchJob(registry, pendingOrders, assignOrder, logger),
		rosterSyncJob:       NewRosterSyncJob(rosterSync, logger),
		earningsBackfillJob: NewEarningsBackfillJob(earningsBackfill, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start; jobs already started are
// stopped again before returning.
func (jm *JobManager) StartAll() error {
	if err := jm.orderDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start order dispatch job: %w", err)
	}

	if err := jm.rosterSyncJob.Start(); err != nil {
		jm.orderDispatchJob.Stop()
		return fmt.Errorf("failed to start roster sync job: %w", err)
	}

	if err := jm.earningsBackfillJob.Start(); err != nil {
		jm.rosterSyncJob.Stop()
		jm.orderDispatchJob.Stop()
		return fmt.Errorf("failed to start earnings backfill job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.earningsBackfillJob.Stop()
	jm.rosterSyncJob.Stop()
	jm.orderDispatchJob.Stop()
}
