package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderNotFound is returned when a command addresses an unknown order.
	ErrOrderNotFound = errors.New("order not found")
	// ErrUnsupportedStatusTarget is returned when the requested target status
	// cannot be reached through a lifecycle transition. Orders enter pending
	// on intake and assigned through the assignment workflow only.
	ErrUnsupportedStatusTarget = errors.New("status cannot be set directly")
)

// UpdateOrderStatusCommandHandler handles order lifecycle transitions.
//
// Beyond moving the order itself, a terminal transition settles the assigned
// partner: delivery releases the load slot and bumps the completed counter,
// cancellation releases the slot, bumps the cancelled counter and folds the
// cancellation reason into the assignment metrics histogram.
type UpdateOrderStatusCommandHandler struct {
	uowFactory StatusUoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for order lifecycle transitions.
func NewUpdateOrderStatusCommandHandler(uowFactory StatusUoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes an order status transition.
// Returns ErrOrderNotFound for unknown orders, ErrUnsupportedStatusTarget for
// statuses that are not reachable through this command, and the aggregate's
// transition error when the order's current status does not allow the move.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	switch cmd.Status() {
	case order.Picked:
		err = aggregate.Pick()
	case order.Delivered:
		err = aggregate.Deliver()
	case order.Cancelled:
		err = aggregate.Cancel()
	default:
		return ErrUnsupportedStatusTarget
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if aggregate.Status() == order.Delivered || aggregate.Status() == order.Cancelled {
		if err = h.settlePartner(ctx, uow, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// settlePartner releases the assigned partner's load slot and bumps the
// completion counters. A partner removed after assignment is tolerated: the
// order transition stands, there is just no load to release.
func (h UpdateOrderStatusCommandHandler) settlePartner(
	ctx context.Context,
	uow StatusUoW,
	aggregate *order.Order,
) error {
	if aggregate.Partner() == nil {
		return nil
	}

	assigned, err := uow.PartnerRepository().Get(ctx, *aggregate.Partner())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	completed := aggregate.Status() == order.Delivered
	assigned.ReleaseOrder(completed)

	if err = uow.PartnerRepository().ConfirmReleaseOrder(ctx, assigned); err != nil {
		return err
	}

	if completed {
		return nil
	}

	return h.recordCancellation(ctx, uow)
}

func (h UpdateOrderStatusCommandHandler) recordCancellation(ctx context.Context, uow StatusUoW) error {
	metricsRepo := uow.MetricsRepository()

	metrics, err := metricsRepo.GetForUpdate(ctx)
	if err != nil {
		return err
	}

	metrics.RecordCancellation()

	return metricsRepo.Save(ctx, metrics)
}
