package services

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

var (
	// ErrNoEligiblePartners is returned when no partner passes the status,
	// capacity and area checks for an order.
	ErrNoEligiblePartners = errors.New("no eligible partners available")
	// ErrNoPartnersForScheduledTime is returned when partners cover the order's
	// area but none is on shift at the order's scheduled time.
	ErrNoPartnersForScheduledTime = errors.New("no partners available for scheduled time")
)

// Dispatcher is a domain service responsible for matching a delivery order with
// the optimal partner.
//
// Key responsibilities:
//   - Validating orders before dispatch
//   - Filtering partners through the eligibility rules
//   - Selecting the least-loaded partner with stable tie-breaking
//   - Ensuring atomic order assignment workflow
//
// Business rules:
//   - Orders must be pending before dispatch
//   - Candidates are filtered in two stages so callers can distinguish
//     "nobody covers this order" from "coverage exists but nobody is on shift"
//   - Selection prioritizes minimum current load; the first candidate
//     encountered wins ties
//   - Order assignment is atomic: the partner takes the order and the order
//     records the partner in one step
//
// Example usage:
//
//	dispatcher := NewDispatcher(partner.DefaultMaxLoad)
//
//	assigned, err := dispatcher.Dispatch(ord, partners)
//	if errors.Is(err, ErrNoEligiblePartners) {
//	    // No partner covers this order at all
//	    return
//	}
//	if errors.Is(err, ErrNoPartnersForScheduledTime) {
//	    // Coverage exists but nobody is on shift at the scheduled time
//	    return
//	}
type Dispatcher struct {
	checker EligibilityChecker
}

// NewDispatcher creates a Dispatcher enforcing the given capacity ceiling.
func NewDispatcher(maxLoad int) Dispatcher {
	return Dispatcher{checker: NewEligibilityChecker(maxLoad)}
}

// Checker returns the eligibility checker used by this dispatcher.
func (d Dispatcher) Checker() EligibilityChecker {
	return d.checker
}

// Dispatch finds the optimal partner for a given order and executes the
// assignment workflow.
//
// Parameters:
//   - o: The order to be dispatched (must be valid and pending)
//   - partners: Slice of partners to consider, in tie-break priority order
//
// Returns:
//   - *partner.Partner: The partner assigned to the order
//   - error: ErrNoEligiblePartners or ErrNoPartnersForScheduledTime when no
//     suitable partner exists, or validation/assignment errors
func (d Dispatcher) Dispatch(o *order.Order, partners []*partner.Partner) (*partner.Partner, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.ValidateAssign(); err != nil {
		return nil, err
	}

	candidates, err := d.Candidates(o, partners)
	if err != nil {
		return nil, err
	}

	best, err := SelectLeastLoaded(candidates)
	if err != nil {
		return nil, err
	}

	if err = d.commit(o, best); err != nil {
		return nil, err
	}

	return best, nil
}

// DispatchTo assigns the order to an explicitly chosen partner after a full
// eligibility check.
//
// Parameters:
//   - o: The order to be dispatched (must be valid and pending)
//   - p: The partner requested by the caller
//
// Returns:
//   - error: The first failed eligibility rule (ErrPartnerInactive,
//     partner.ErrPartnerAtCapacity, ErrAreaNotServed, ErrOutsideShift),
//     or validation/assignment errors
func (d Dispatcher) DispatchTo(o *order.Order, p *partner.Partner) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.ValidateAssign(); err != nil {
		return err
	}

	if err := d.checker.Check(p, o); err != nil {
		return err
	}

	return d.commit(o, p)
}

// Candidates filters partners down to those eligible for the order, preserving
// input order for stable tie-breaking.
//
// Filtering runs in two stages. Stage one keeps active partners with spare
// capacity that serve the order's area; when it yields nothing the order is
// unservable and ErrNoEligiblePartners is returned. Stage two keeps partners
// whose shift covers the order's scheduled time; when coverage exists but
// stage two yields nothing, ErrNoPartnersForScheduledTime is returned.
func (d Dispatcher) Candidates(o *order.Order, partners []*partner.Partner) ([]*partner.Partner, error) {
	covering := make([]*partner.Partner, 0, len(partners))

	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if !p.IsActive() || !p.HasCapacity(d.checker.MaxLoad()) || !p.ServesArea(o.Area()) {
			continue
		}

		covering = append(covering, p)
	}

	if len(covering) == 0 {
		return nil, ErrNoEligiblePartners
	}

	onShift := make([]*partner.Partner, 0, len(covering))

	for _, p := range covering {
		if p.Shift().Contains(o.ScheduledFor()) {
			onShift = append(onShift, p)
		}
	}

	if len(onShift) == 0 {
		return nil, ErrNoPartnersForScheduledTime
	}

	return onShift, nil
}

func (d Dispatcher) commit(o *order.Order, p *partner.Partner) error {
	if err := p.TakeOrder(d.checker.MaxLoad()); err != nil {
		return err
	}

	return o.Assign(p.ID())
}
