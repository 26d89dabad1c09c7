package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// ErrOrderAlreadyAssigned is returned when the order has already left the
// pending state. The wrapped message names the order's current status.
var ErrOrderAlreadyAssigned = errors.New("order is already assigned")

// PartnerSummary is the partner projection returned with a successful assignment.
type PartnerSummary struct {
	ID    kernel.UUID
	Name  string
	Phone string
}

// AssignmentResult carries the outcome of a successful assignment attempt.
type AssignmentResult struct {
	Order   *order.Order
	Partner PartnerSummary
}

// AssignOrderCommandHandler orchestrates a single assignment attempt.
//
// Every attempt that reaches a business decision leaves exactly one ledger
// entry, successful or failed, and folds the outcome into the singleton
// metrics record before the transaction commits. Rejected requests that never
// reach a decision, unknown order or unknown partner, write nothing.
//
// The capacity and order races are settled at write time with conditional
// updates: a partner load increment only lands while the stored load is below
// the ceiling, and the pending to assigned transition only lands while the
// stored row is still pending.
type AssignOrderCommandHandler struct {
	uowFactory AssignmentUoWFactory
	dispatcher services.Dispatcher
}

// NewAssignOrderCommandHandler creates a handler for single assignment attempts.
func NewAssignOrderCommandHandler(
	uowFactory AssignmentUoWFactory,
	dispatcher services.Dispatcher,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes a single assignment attempt.
//
// Returns the typed business error for every failed attempt:
// ErrOrderNotFound and ErrPartnerNotFound for unknown aggregates,
// ErrOrderAlreadyAssigned for orders past pending, the eligibility sentinels
// from the services package for rejected explicit partners, and
// services.ErrNoEligiblePartners or services.ErrNoPartnersForScheduledTime
// when automatic selection finds nobody.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) (AssignmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignmentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return AssignmentResult{}, ErrOrderNotFound
	}
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = aggregate.ValidateAssign(); err != nil {
		return AssignmentResult{}, h.failAttempt(
			ctx, uow, aggregate, cmd.PartnerID(),
			assignment.ReasonAlreadyAssigned(aggregate.Status().String()),
			fmt.Errorf("%w: current status is %s", ErrOrderAlreadyAssigned, aggregate.Status()),
		)
	}

	var selected *partner.Partner
	if cmd.PartnerID() != nil {
		selected, err = h.assignExplicit(ctx, uow, aggregate, *cmd.PartnerID())
	} else {
		selected, err = h.assignAutomatic(ctx, uow, aggregate)
	}
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = h.persistAssignment(ctx, uow, aggregate, selected); err != nil {
		return AssignmentResult{}, err
	}

	entry, err := assignment.NewSuccessEntry(aggregate.ID(), selected.ID(), time.Now().UTC())
	if err != nil {
		return AssignmentResult{}, err
	}

	if err = h.foldEntry(ctx, uow, entry, ""); err != nil {
		return AssignmentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignmentResult{}, err
	}

	return AssignmentResult{
		Order: aggregate,
		Partner: PartnerSummary{
			ID:    selected.ID(),
			Name:  selected.Name(),
			Phone: selected.Phone(),
		},
	}, nil
}

// assignExplicit runs the full eligibility check against the requested
// partner and mutates both aggregates on success.
func (h AssignOrderCommandHandler) assignExplicit(
	ctx context.Context,
	uow AssignmentUoW,
	aggregate *order.Order,
	partnerID kernel.UUID,
) (*partner.Partner, error) {
	requested, err := uow.PartnerRepository().Get(ctx, partnerID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrPartnerNotFound
	}
	if err != nil {
		return nil, err
	}

	if err = h.dispatcher.DispatchTo(aggregate, requested); err != nil {
		if reason := failureReason(err); reason != "" {
			return nil, h.failAttempt(ctx, uow, aggregate, &partnerID, reason, err)
		}
		return nil, err
	}

	return requested, nil
}

// assignAutomatic snapshots partners in registration order, so least loaded
// ties resolve to the earliest registered partner, and dispatches.
func (h AssignOrderCommandHandler) assignAutomatic(
	ctx context.Context,
	uow AssignmentUoW,
	aggregate *order.Order,
) (*partner.Partner, error) {
	partners, err := uow.PartnerRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := h.dispatcher.Dispatch(aggregate, partners)
	if err != nil {
		if reason := failureReason(err); reason != "" {
			return nil, h.failAttempt(ctx, uow, aggregate, nil, reason, err)
		}
		return nil, err
	}

	return selected, nil
}

// persistAssignment lands both conditional writes. Losing the capacity race
// surfaces the partner as full; losing the order race surfaces the order as
// already assigned. Both are recorded like any other failed attempt.
func (h AssignOrderCommandHandler) persistAssignment(
	ctx context.Context,
	uow AssignmentUoW,
	aggregate *order.Order,
	selected *partner.Partner,
) error {
	maxLoad := h.dispatcher.Checker().MaxLoad()

	err := uow.PartnerRepository().ConfirmTakeOrder(ctx, selected, maxLoad)
	if errors.Is(err, ports.ErrConcurrentModification) {
		return h.failAttempt(
			ctx, uow, aggregate, nil,
			assignment.ReasonPartnerAtCapacity,
			partner.ErrPartnerAtCapacity,
		)
	}
	if err != nil {
		return err
	}

	err = uow.OrderRepository().ConfirmAssignment(ctx, aggregate)
	if errors.Is(err, ports.ErrConcurrentModification) {
		return h.failAttempt(
			ctx, uow, aggregate, nil,
			assignment.ReasonAlreadyAssigned(order.Assigned.String()),
			fmt.Errorf("%w: order was assigned concurrently", ErrOrderAlreadyAssigned),
		)
	}

	return err
}

// failAttempt records a failed ledger entry, folds the failure into the
// metrics record, commits, and returns the business error. The entry and the
// fold are the only writes that survive a failed attempt.
func (h AssignOrderCommandHandler) failAttempt(
	ctx context.Context,
	uow AssignmentUoW,
	aggregate *order.Order,
	rejectedPartner *kernel.UUID,
	reason string,
	businessErr error,
) error {
	if err := uow.Rollback(ctx); err != nil {
		return err
	}
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	entry, err := assignment.NewFailedEntry(aggregate.ID(), rejectedPartner, reason, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = h.foldEntry(ctx, uow, entry, reason); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return businessErr
}

// foldEntry appends a ledger entry and recomputes the metrics record from the
// authoritative ledger counts, all under the metrics row lock.
func (h AssignOrderCommandHandler) foldEntry(
	ctx context.Context,
	uow AssignmentUoW,
	entry *assignment.Entry,
	reason string,
) error {
	if err := uow.AssignmentRepository().Add(ctx, entry); err != nil {
		return err
	}

	metricsRepo := uow.MetricsRepository()

	metrics, err := metricsRepo.GetForUpdate(ctx)
	if err != nil {
		return err
	}

	total, success, err := uow.AssignmentRepository().CountByStatus(ctx)
	if err != nil {
		return err
	}

	if err = metrics.FoldAttempt(success, total, reason); err != nil {
		return err
	}

	return metricsRepo.Save(ctx, metrics)
}

// failureReason maps an eligibility or selection error to its ledger reason
// string. Unknown errors map to the empty string and are treated as
// infrastructure failures.
func failureReason(err error) string {
	switch {
	case errors.Is(err, services.ErrPartnerInactive):
		return assignment.ReasonPartnerInactive
	case errors.Is(err, partner.ErrPartnerAtCapacity):
		return assignment.ReasonPartnerAtCapacity
	case errors.Is(err, services.ErrAreaNotServed):
		return assignment.ReasonAreaNotServed
	case errors.Is(err, services.ErrOutsideShift):
		return assignment.ReasonOutsideShift
	case errors.Is(err, services.ErrNoEligiblePartners):
		return assignment.ReasonNoEligiblePartners
	case errors.Is(err, services.ErrNoPartnersForScheduledTime):
		return assignment.ReasonNoPartnersForScheduledTime
	default:
		return ""
	}
}
