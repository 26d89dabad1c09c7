package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderNumberIsRequired = errors.New("order number is required")
	ErrAreaIsRequired        = errors.New("area is required")
	ErrItemsAreRequired      = errors.New("at least one item is required")
)

// CreateOrderCommand represents a request to register a new delivery order.
// Encapsulates customer details, delivery area, ordered items and the
// scheduled delivery time. New orders always start in pending status.
//
// Example:
//
//	scheduledFor, _ := kernel.ParseTimeOfDay("14:30")
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), "ORD-1001",
//	    order.Customer{Name: "Ada Park", Phone: "+1-555-0101", Address: "12 Elm St"},
//	    "Downtown",
//	    []order.Item{{Name: "Noodles", Quantity: 2, Price: 8.5}},
//	    scheduledFor,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	orderNumber  string
	customer     order.Customer
	area         string
	items        []order.Item
	scheduledFor kernel.TimeOfDay

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that the identifiers, area, items and scheduled time are present
// and well formed. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderNumber string,
	customer order.Customer,
	area string,
	items []order.Item,
	scheduledFor kernel.TimeOfDay,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderNumber(orderNumber),
		cmd.setCustomer(customer),
		cmd.setArea(area),
		cmd.setItems(items),
		cmd.setScheduledFor(scheduledFor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderNumber returns the human readable order number.
func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

// Customer returns the customer contact details.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// Area returns the delivery area.
func (c CreateOrderCommand) Area() string {
	return c.area
}

// Items returns the ordered items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// ScheduledFor returns the scheduled delivery time.
func (c CreateOrderCommand) ScheduledFor() kernel.TimeOfDay {
	return c.scheduledFor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return ErrOrderNumberIsRequired
	}

	c.orderNumber = orderNumber
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setArea(area string) error {
	if area == "" {
		return ErrAreaIsRequired
	}

	c.area = area
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	c.items = items
	return nil
}

func (c *CreateOrderCommand) setScheduledFor(scheduledFor kernel.TimeOfDay) error {
	if err := scheduledFor.Validate(); err != nil {
		return err
	}

	c.scheduledFor = scheduledFor
	return nil
}
