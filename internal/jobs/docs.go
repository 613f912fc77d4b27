// Package jobs provides scheduled background tasks for the production
// tracking service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BatchCompletionJob - Runs every five seconds to recompute batch
// progress from the scan ledger and complete batches whose orders have all
// reached the terminal station.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(checkCompletionHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The completion sweep is idempotent, so a failed run is only logged; the
// next tick repeats the work without harm.
package jobs
