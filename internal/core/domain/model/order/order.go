package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Customer holds the contact details for the person receiving the order.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Item is a single ordered line: what, how many, and at what price.
type Item struct {
	Name     string
	Quantity int
	Price    float64
}

// Order represents a delivery order in the system. It is the aggregate root that
// manages the order lifecycle from intake through assignment to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Customer name, phone, and address are required
//   - Must have a non-empty area and at least one item
//   - Total amount must be positive
//   - A partner reference is present exactly when the order left Pending
//   - Status transitions follow the rules defined on Status
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-facing unique reference, e.g. "ORD-1712345678901"
	orderNumber string

	// customer is the delivery recipient's contact details
	customer Customer

	// area is the free-text region key used for coarse geographic matching
	area string

	// items are the ordered lines
	items []Item

	// scheduledFor is the requested delivery time of day
	scheduledFor kernel.TimeOfDay

	// status represents the current state in the order lifecycle
	status Status

	// partnerID is the assigned delivery partner's ID (nil while Pending)
	partnerID *kernel.UUID

	// totalAmount is the order total
	totalAmount float64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Pending status with validation.
// This is the only way to create a valid new Order, ensuring all business
// invariants are maintained. Missing required fields are reported together,
// each naming the offending field.
//
// Example:
//
//	id := kernel.NewUUID()
//	scheduled, _ := kernel.ParseTimeOfDay("14:00")
//	order, err := NewOrder(id, "ORD-1712345678901",
//	    Customer{Name: "Asha", Phone: "9800000000", Address: "12 Hill Rd"},
//	    "Andheri", []Item{{Name: "Dosa", Quantity: 2, Price: 120}},
//	    scheduled, 240)
//	if err != nil {
//	    // Handle validation error listing the missing fields
//	}
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	customer Customer,
	area string,
	items []Item,
	scheduledFor kernel.TimeOfDay,
	totalAmount float64,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setCustomer(customer),
		order.setArea(area),
		order.setItems(items),
		order.setScheduledFor(scheduledFor),
		order.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including its current
// status and optional partner assignment. The status/partner consistency
// invariant is re-checked so corrupted rows surface as errors instead of
// invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	customer Customer,
	area string,
	items []Item,
	scheduledFor kernel.TimeOfDay,
	status Status,
	partnerID *kernel.UUID,
	totalAmount float64,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHavePartner(partnerID != nil); err != nil {
		return nil, err
	}

	order, err := NewOrder(id, orderNumber, customer, area, items, scheduledFor, totalAmount)
	if err != nil {
		return nil, err
	}

	order.status = status
	order.partnerID = partnerID
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for nil or zero-value instances.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-facing order reference.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Customer returns the delivery recipient's contact details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Area returns the free-text region key for this order.
func (o *Order) Area() string {
	return o.area
}

// Items returns the ordered lines.
func (o *Order) Items() []Item {
	return o.items
}

// ScheduledFor returns the requested delivery time of day.
func (o *Order) ScheduledFor() kernel.TimeOfDay {
	return o.scheduledFor
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Partner returns the assigned delivery partner's ID.
// Returns nil while the order is Pending.
func (o *Order) Partner() *kernel.UUID {
	return o.partnerID
}

// TotalAmount returns the order total.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// ValidateAssign reports whether the order may currently be assigned.
func (o *Order) ValidateAssign() error {
	return o.status.ValidateAssign()
}

// Assign assigns the order to a delivery partner and moves it to Assigned.
//
// Business rules:
//   - The partner ID must be valid
//   - The order must still be Pending
//
// After successful assignment, Partner() returns the partner's ID.
func (o *Order) Assign(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.partnerID = &partnerID
	return nil
}

// Pick marks the order as collected by its partner.
// Valid only from Assigned.
func (o *Order) Pick() error {
	newStatus, err := o.status.Pick()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered to the customer.
// Valid only from Picked. Delivered is a terminal state.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel calls the order off after assignment.
// Valid from Assigned or Picked. Cancelled is a terminal state.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setOrderNumber validates and sets the human-facing order reference.
func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

// setCustomer validates and sets the recipient contact details.
func (o *Order) setCustomer(customer Customer) error {
	if err := errors.Join(
		requireField("customer.name", customer.Name),
		requireField("customer.phone", customer.Phone),
		requireField("customer.address", customer.Address),
	); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

// setArea validates and sets the region key.
func (o *Order) setArea(area string) error {
	if area == "" {
		return errs.NewValueIsRequiredError("area")
	}
	o.area = area
	return nil
}

// setItems validates and sets the ordered lines.
// At least one item is required; each item needs a name, a positive quantity,
// and a non-negative price.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for i, item := range items {
		if item.Name == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].name", i))
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity))
		}
		if item.Price < 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].price", i),
				fmt.Errorf("%f is negative", item.Price))
		}
	}

	o.items = items
	return nil
}

// setScheduledFor validates and sets the requested delivery time.
func (o *Order) setScheduledFor(scheduledFor kernel.TimeOfDay) error {
	if err := scheduledFor.Validate(); err != nil {
		return err
	}
	o.scheduledFor = scheduledFor
	return nil
}

// setTotalAmount validates and sets the order total.
func (o *Order) setTotalAmount(totalAmount float64) error {
	if totalAmount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"totalAmount", fmt.Errorf("%f is not greater than 0", totalAmount))
	}
	o.totalAmount = totalAmount
	return nil
}

// requireField returns a ValueIsRequiredError when value is empty.
func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
