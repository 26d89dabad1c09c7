package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> Picked ──> Delivered
//	               │           │
//	               └───────────┴──> Cancelled
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is created by intake.
	// Orders in this status are waiting to be assigned to a delivery partner.
	Pending

	// Assigned indicates the order has been matched with a delivery partner.
	Assigned

	// Picked indicates the partner has collected the order for delivery.
	Picked

	// Delivered indicates the order reached the customer.
	// This is a terminal state.
	Delivered

	// Cancelled indicates the order was called off after assignment.
	// This is a terminal state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		Picked:    "picked",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns only valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Assigned:  "assigned",
		Picked:    "picked",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// StatusFromString parses a wire-format status ("pending", "assigned", ...)
// into a Status value. Returns an error naming the invalid value otherwise.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not one of pending, assigned, picked, delivered, cancelled", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are: Pending, Assigned, Picked, Delivered, Cancelled.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire name of the status, or "unknown".
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status ends the order lifecycle.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateAssign checks if the status allows assignment without performing
// the transition. Only Pending orders may be assigned; re-assignment of an
// order that already left Pending is a business-rule failure.
func (s Status) ValidateAssign() error {
	if s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// ValidateCanHavePartner validates the consistency between order status and
// partner assignment: a partner reference is present exactly when the order
// has left the Pending status.
func (s Status) ValidateCanHavePartner(hasPartner bool) error {
	if hasPartner && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a partner", s.String()),
		)
	}

	if !hasPartner && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no partner", s.String()),
		)
	}

	return nil
}

// Assign transitions the status to Assigned.
// Valid only from Pending.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// Pick transitions the status to Picked.
// Valid only from Assigned.
func (s Status) Pick() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to pick", s.String()),
		)
	}

	return Picked, nil
}

// Deliver transitions the status to Delivered.
// Valid only from Picked.
func (s Status) Deliver() (Status, error) {
	if s != Picked {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to deliver", s.String()),
		)
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
// Valid from Assigned or Picked.
func (s Status) Cancel() (Status, error) {
	if s != Assigned && s != Picked {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
