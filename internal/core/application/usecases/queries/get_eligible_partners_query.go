package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetEligiblePartnersQueryIsNotConstructed = errors.New(
	"GetEligiblePartnersQuery must be created via NewGetEligiblePartnersQuery constructor",
)

// GetEligiblePartnersQuery retrieves active partners with spare capacity that
// serve an area, optionally narrowed to those on shift at a given time.
//
// Example:
//
//	query, _ := NewGetEligiblePartnersQuery("Andheri", nil) // coverage only
//	at, _ := kernel.ParseTimeOfDay("22:30")
//	query, _ = NewGetEligiblePartnersQuery("Andheri", &at) // on shift at 22:30
type GetEligiblePartnersQuery struct {
	area string
	at   *kernel.TimeOfDay

	guard guard.ConstructorGuard
}

// NewGetEligiblePartnersQuery creates a query for eligible partners.
// The area is required; a nil time skips the shift check.
func NewGetEligiblePartnersQuery(area string, at *kernel.TimeOfDay) (GetEligiblePartnersQuery, error) {
	if area == "" {
		return GetEligiblePartnersQuery{}, errs.NewValueIsRequiredError("area")
	}
	if at != nil {
		if err := at.Validate(); err != nil {
			return GetEligiblePartnersQuery{}, err
		}
	}

	return GetEligiblePartnersQuery{
		area:  area,
		at:    at,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEligiblePartnersQuery) Validate() error {
	return q.guard.Validate(ErrGetEligiblePartnersQueryIsNotConstructed)
}

// Area returns the required coverage area.
func (q GetEligiblePartnersQuery) Area() string {
	return q.area
}

// At returns the optional time-of-day shift filter.
func (q GetEligiblePartnersQuery) At() *kernel.TimeOfDay {
	return q.at
}

// GetEligiblePartnersQueryResponse is one partner able to take an assignment
// for the queried area.
type GetEligiblePartnersQueryResponse struct {
	ID          kernel.UUID
	Name        string
	Phone       string
	CurrentLoad int
	Areas       []string
	ShiftStart  string
	ShiftEnd    string
}
