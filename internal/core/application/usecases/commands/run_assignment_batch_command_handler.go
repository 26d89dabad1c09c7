package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// BatchResult carries the outcome of one batch assignment sweep.
type BatchResult struct {
	TotalProcessed int64
	SuccessCount   int64
	FailureCount   int64
	FailureReasons assignment.ReasonCounts
}

// RunAssignmentBatchCommandHandler orchestrates the batch assignment sweep.
//
// The sweep snapshots pending orders once, then processes each order in its
// own transaction: committed assignments stay committed even when a later
// order aborts the run on an infrastructure failure. Every processed order
// leaves one ledger entry. The run's aggregate outcome is folded into the
// metrics record once at the end, as a weighted blend of the stored success
// rate and the run's rate; the fold happens even when the run aborts early,
// covering the orders that were processed.
type RunAssignmentBatchCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher services.Dispatcher
}

// NewRunAssignmentBatchCommandHandler creates a handler for batch assignment sweeps.
func NewRunAssignmentBatchCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher services.Dispatcher,
) RunAssignmentBatchCommandHandler {
	return RunAssignmentBatchCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes a batch assignment sweep.
// The returned BatchResult reflects the orders actually processed, including
// runs that aborted early; the error reports the abort cause when there is one.
func (h RunAssignmentBatchCommandHandler) Handle(
	ctx context.Context,
	cmd RunAssignmentBatchCommand,
) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	pending, err := h.snapshotPending(ctx)
	if err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{FailureReasons: assignment.ReasonCounts{}}
	if len(pending) == 0 {
		return result, nil
	}

	var runErr error
	for _, orderID := range pending {
		reason, err := h.processOrder(ctx, orderID)
		if err != nil {
			runErr = err
			break
		}

		result.TotalProcessed++
		if reason == "" {
			result.SuccessCount++
			continue
		}

		result.FailureCount++
		result.FailureReasons.Add(reason)
	}

	if foldErr := h.foldRun(ctx, result); foldErr != nil && runErr == nil {
		runErr = foldErr
	}

	return result, runErr
}

// snapshotPending collects the IDs of every pending order, oldest first.
func (h RunAssignmentBatchCommandHandler) snapshotPending(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllPending(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID())
	}

	return ids, nil
}

// processOrder attempts one assignment in its own transaction.
// An empty returned reason means the order was assigned; a non-empty reason
// means a recorded business failure. A non-nil error aborts the sweep.
func (h RunAssignmentBatchCommandHandler) processOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return "", err
	}

	// Reload catches orders assigned between the snapshot and now.
	if err = aggregate.ValidateAssign(); err != nil {
		reason := assignment.ReasonAlreadyAssigned(aggregate.Status().String())
		return reason, h.recordFailure(ctx, uow, orderID, reason)
	}

	candidates, err := uow.PartnerRepository().GetAllAvailable(ctx, h.dispatcher.Checker().MaxLoad())
	if err != nil {
		return "", err
	}

	selected, err := h.dispatcher.Dispatch(aggregate, candidates)
	if err != nil {
		if reason := batchFailureReason(err); reason != "" {
			return reason, h.recordFailure(ctx, uow, orderID, reason)
		}
		return "", err
	}

	err = uow.PartnerRepository().ConfirmTakeOrder(ctx, selected, h.dispatcher.Checker().MaxLoad())
	if errors.Is(err, ports.ErrConcurrentModification) {
		reason := assignment.ReasonPartnerAtCapacity
		return reason, h.recordFailure(ctx, uow, orderID, reason)
	}
	if err != nil {
		return "", err
	}

	err = uow.OrderRepository().ConfirmAssignment(ctx, aggregate)
	if errors.Is(err, ports.ErrConcurrentModification) {
		reason := assignment.ReasonAlreadyAssigned(order.Assigned.String())
		return reason, h.recordFailure(ctx, uow, orderID, reason)
	}
	if err != nil {
		return "", err
	}

	entry, err := assignment.NewSuccessEntry(orderID, selected.ID(), time.Now().UTC())
	if err != nil {
		return "", err
	}

	if err = uow.AssignmentRepository().Add(ctx, entry); err != nil {
		return "", err
	}

	return "", uow.Commit(ctx)
}

// recordFailure restarts the transaction to drop any partial mutations, then
// commits a single failed ledger entry for the order.
func (h RunAssignmentBatchCommandHandler) recordFailure(
	ctx context.Context,
	uow AssignmentUoW,
	orderID kernel.UUID,
	reason string,
) error {
	if err := uow.Rollback(ctx); err != nil {
		return err
	}
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	entry, err := assignment.NewFailedEntry(orderID, nil, reason, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// foldRun blends the sweep's outcome into the metrics record in one final
// transaction. Empty runs leave the record untouched.
func (h RunAssignmentBatchCommandHandler) foldRun(ctx context.Context, result BatchResult) error {
	if result.TotalProcessed == 0 {
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	metricsRepo := uow.MetricsRepository()

	metrics, err := metricsRepo.GetForUpdate(ctx)
	if err != nil {
		return err
	}

	if err = metrics.FoldRun(result.SuccessCount, result.FailureCount, result.FailureReasons); err != nil {
		return err
	}

	if err = metricsRepo.Save(ctx, metrics); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// batchFailureReason maps a dispatch error to the sweep's ledger reason
// string. Unknown errors abort the sweep.
func batchFailureReason(err error) string {
	switch {
	case errors.Is(err, services.ErrNoEligiblePartners):
		return assignment.ReasonBatchNoPartnersForArea
	case errors.Is(err, services.ErrNoPartnersForScheduledTime):
		return assignment.ReasonBatchNoPartnersAtTime
	default:
		return ""
	}
}
