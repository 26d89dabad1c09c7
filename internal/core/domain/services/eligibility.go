package services

import (
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
)

var (
	// ErrPartnerInactive is returned when the partner is not accepting orders.
	ErrPartnerInactive = errors.New("partner is inactive")
	// ErrAreaNotServed is returned when the order's area is not in the partner's coverage list.
	ErrAreaNotServed = errors.New("partner does not serve this area")
	// ErrOutsideShift is returned when the order's scheduled time falls outside the partner's shift.
	ErrOutsideShift = errors.New("order time outside partner's shift")
)

// EligibilityChecker is a domain service deciding whether a single partner may
// take a given order.
//
// The checks run in a fixed precedence, and the first failed check determines
// the returned error:
//  1. Partner must be active
//  2. Partner must have capacity below the configured ceiling
//  3. Partner must serve the order's delivery area (exact match)
//  4. The order's scheduled time must fall within the partner's shift,
//     inclusive on both ends, with overnight shifts wrapping past midnight
type EligibilityChecker struct {
	maxLoad int
}

// NewEligibilityChecker creates an EligibilityChecker with the given capacity ceiling.
//
// Parameters:
//   - maxLoad: Maximum number of concurrent orders a partner may carry
//
// Returns:
//   - EligibilityChecker: A new instance ready for eligibility checks
func NewEligibilityChecker(maxLoad int) EligibilityChecker {
	return EligibilityChecker{maxLoad: maxLoad}
}

// MaxLoad returns the configured capacity ceiling.
func (c EligibilityChecker) MaxLoad() int {
	return c.maxLoad
}

// Check validates a partner against an order and reports the first failed rule.
//
// Parameters:
//   - p: The partner under consideration (must be valid)
//   - o: The order to be assigned (must be valid)
//
// Returns:
//   - error: nil when the partner is eligible, otherwise ErrPartnerInactive,
//     partner.ErrPartnerAtCapacity, ErrAreaNotServed or ErrOutsideShift,
//     or a validation error for improperly constructed aggregates
func (c EligibilityChecker) Check(p *partner.Partner, o *order.Order) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if !p.IsActive() {
		return ErrPartnerInactive
	}
	if !p.HasCapacity(c.maxLoad) {
		return partner.ErrPartnerAtCapacity
	}
	if !p.ServesArea(o.Area()) {
		return ErrAreaNotServed
	}
	if !p.Shift().Contains(o.ScheduledFor()) {
		return ErrOutsideShift
	}

	return nil
}

// IsEligible reports whether the partner passes every eligibility rule for the order.
func (c EligibilityChecker) IsEligible(p *partner.Partner, o *order.Order) bool {
	return c.Check(p, o) == nil
}
