package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrRunAssignmentBatchCommandIsNotConstructed = errors.New(
	"RunAssignmentBatchCommand must be created via NewRunAssignmentBatchCommand constructor",
)

// RunAssignmentBatchCommand triggers a sweep over every pending order,
// attempting to assign each one to the least loaded eligible partner.
// This command represents the periodic assignment run; it is parameterless.
//
// Example:
//
//	cmd := NewRunAssignmentBatchCommand()
//	handler := NewRunAssignmentBatchCommandHandler(uowFactory, dispatcher)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Sweep aborted: %v", err)
//	}
//	log.Printf("Processed %d orders, %d assigned", result.TotalProcessed, result.SuccessCount)
type RunAssignmentBatchCommand struct {
	guard guard.ConstructorGuard
}

// NewRunAssignmentBatchCommand creates a command to trigger a batch assignment sweep.
func NewRunAssignmentBatchCommand() RunAssignmentBatchCommand {
	return RunAssignmentBatchCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RunAssignmentBatchCommand) Validate() error {
	return c.guard.Validate(ErrRunAssignmentBatchCommandIsNotConstructed)
}
