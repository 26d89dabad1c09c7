// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order assignment.
//
// # Available Jobs
//
// 1. AssignmentSweepJob - Runs every 30 seconds to sweep pending orders through
// batch assignment, matching each with the least loaded eligible partner
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(runBatchHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep that assigns nothing is a normal outcome and is not logged as an
// error. Infrastructure failures abort the run and are logged; the next tick
// picks up whatever backlog remains.
package jobs
