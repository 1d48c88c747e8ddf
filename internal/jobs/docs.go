// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. OrderDispatchJob - Runs every second to offer pending orders to available couriers
// 2. RosterSyncJob - Runs every minute to sync verified couriers into the roster read table
// 3. EarningsBackfillJob - Runs hourly to repair delivered orders missing earnings
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(registry, pendingOrders, assignOrder, rosterSync, earningsBackfill, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - The dispatch job ignores expected business outcomes (order already taken,
//   courier ineligible) and only logs infrastructure failures
// - Roster sync and backfill log all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
