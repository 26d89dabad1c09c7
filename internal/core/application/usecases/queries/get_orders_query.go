// Package queries contains read operations in the CQRS architecture.
// Query handlers read directly from the database with raw SQL, bypassing the
// domain model, and return flat read models shaped for presentation.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves delivery orders, optionally filtered by status.
//
// Example:
//
//	query, _ := NewGetOrdersQuery(nil) // all orders
//	pending := order.Pending
//	query, _ = NewGetOrdersQuery(&pending) // pending only
type GetOrdersQuery struct {
	status *order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to retrieve orders.
// A nil status returns every order.
func NewGetOrdersQuery(status *order.Status) (GetOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// GetOrdersQueryResponse represents one order in the read surface.
type GetOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	CustomerName  string
	CustomerPhone string
	Area          string
	ScheduledFor  string
	Status        string
	PartnerID     *kernel.UUID
	TotalAmount   float64
}
