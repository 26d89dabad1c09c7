package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand triggers the assignment of a pending order to a delivery
// partner. When a partner is named explicitly the full eligibility check runs
// against that partner only; otherwise the least loaded eligible partner is
// selected automatically.
//
// Example:
//
//	cmd, _ := NewAssignOrderCommand(orderID, nil)
//	handler := NewAssignOrderCommandHandler(uowFactory, dispatcher)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, services.ErrNoEligiblePartners) {
//	    log.Printf("Nobody covers this order: %v", err)
//	}
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	partnerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign an order.
// partnerID is optional: nil selects a partner automatically.
func NewAssignOrderCommand(orderID kernel.UUID, partnerID *kernel.UUID) (AssignOrderCommand, error) {
	cmd := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to assign.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// PartnerID returns the explicitly requested partner, or nil for automatic selection.
func (c AssignOrderCommand) PartnerID() *kernel.UUID {
	return c.partnerID
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setPartnerID(partnerID *kernel.UUID) error {
	if partnerID == nil {
		return nil
	}

	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
