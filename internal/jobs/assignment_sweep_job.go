package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// sweepSchedule runs the batch sweep every 30 seconds.
const sweepSchedule = "*/30 * * * * *"

// AssignmentSweepJob manages the scheduled batch assignment of pending orders.
// Each run sweeps every pending order through an assignment attempt.
type AssignmentSweepJob struct {
	handler commands.RunAssignmentBatchCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentSweepJob creates a new job for batch order assignment.
// Uses RunAssignmentBatchCommandHandler to process the pending backlog.
func NewAssignmentSweepJob(handler commands.RunAssignmentBatchCommandHandler, logger *slog.Logger) *AssignmentSweepJob {
	return &AssignmentSweepJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "assignment_sweep_job"),
	}
}

// Start begins the assignment sweep job.
func (j *AssignmentSweepJob) Start() error {
	_, err := j.cron.AddFunc(sweepSchedule, func() {
		ctx := context.Background()
		cmd := commands.NewRunAssignmentBatchCommand()

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Assignment sweep failed", "error", err)
			return
		}

		if result.TotalProcessed > 0 {
			j.logger.InfoContext(ctx, "Assignment sweep completed",
				"processed", result.TotalProcessed,
				"succeeded", result.SuccessCount,
				"failed", result.FailureCount)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the assignment sweep job.
func (j *AssignmentSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment sweep job stopped")
}
