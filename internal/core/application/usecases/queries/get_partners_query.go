package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPartnersQueryIsNotConstructed = errors.New(
	"GetPartnersQuery must be created via NewGetPartnersQuery constructor",
)

// GetPartnersQuery retrieves every registered delivery partner.
// This is a parameterless query used by the partner administration surface.
type GetPartnersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPartnersQuery creates a query to retrieve all partners.
func NewGetPartnersQuery() GetPartnersQuery {
	return GetPartnersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetPartnersQueryIsNotConstructed)
}

// GetPartnersQueryResponse represents one partner in the read surface.
// Shift bounds are rendered back to HH:mm.
type GetPartnersQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Email           string
	Phone           string
	Status          string
	CurrentLoad     int
	Areas           []string
	ShiftStart      string
	ShiftEnd        string
	Rating          float64
	CompletedOrders int64
	CancelledOrders int64
}
