package partner

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// DefaultMaxLoad is the default capacity ceiling: the number of orders a
	// partner may carry at once. The ceiling is a hard constraint, enforced
	// both during eligibility evaluation and again at the point of persisting
	// a load increment.
	DefaultMaxLoad = 3
)

var (
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized Partner.
	ErrPartnerIsNotConstructed = errors.New("Partner must be created via NewPartner constructor")
	// ErrPartnerAtCapacity is returned when taking an order would exceed the capacity ceiling.
	ErrPartnerAtCapacity = errors.New("partner at maximum capacity")
)

// Metrics holds a partner's cumulative delivery history.
type Metrics struct {
	Rating          float64
	CompletedOrders int
	CancelledOrders int
}

// Partner represents a delivery partner in the system. It is an aggregate root
// that manages partner identity, availability, coverage, and workload.
//
// Key responsibilities:
//   - Managing partner identity (ID, name, contact details)
//   - Tracking current load against the capacity ceiling
//   - Declaring coverage areas and the daily shift window
//   - Accumulating completion/cancellation metrics on terminal resolutions
//
// Business rules:
//   - Partner must have a valid UUID, non-empty name, email, and phone
//   - At least one coverage area and a constructed shift window are required
//   - Current load stays within [0, ceiling]; TakeOrder and ReleaseOrder are
//     the only mutators and respect the bounds
//
// Example usage:
//
//	start, _ := kernel.ParseTimeOfDay("09:00")
//	end, _ := kernel.ParseTimeOfDay("18:00")
//	shift, _ := partner.NewShift(start, end)
//	p, err := partner.NewPartner(kernel.NewUUID(), "Ravi Kumar",
//	    "ravi@dispatch.example", "9800000002", []string{"Andheri"}, shift)
//	if err != nil {
//	    // Handle construction error
//	}
type Partner struct {
	// id uniquely identifies the partner
	id kernel.UUID
	// name is the human-readable name of the partner
	name string
	// email is the partner's contact email (unique across partners)
	email string
	// phone is the partner's contact phone (unique across partners)
	phone string
	// status flags whether the partner may receive assignments
	status Status
	// currentLoad is the number of orders the partner currently carries
	currentLoad int
	// areas are the region keys the partner serves
	areas []string
	// shift is the partner's daily availability window
	shift Shift
	// metrics accumulates the partner's delivery history
	metrics Metrics
	// isConstructed ensures the partner was created via a constructor
	isConstructed bool
}

// NewPartner creates a new active Partner with zero load and validation.
// Missing required fields are reported together, each naming the field.
func NewPartner(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	areas []string,
	shift Shift,
) (*Partner, error) {
	p := &Partner{
		status:        Active,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setEmail(email),
		p.setPhone(phone),
		p.setAreas(areas),
		p.setShift(shift),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePartner reconstructs a Partner from persistence, including its
// status, current load, and accumulated metrics. Load bounds are re-checked
// so corrupted rows surface as errors instead of invalid aggregates.
func RestorePartner(
	id kernel.UUID,
	name string,
	email string,
	phone string,
	status Status,
	currentLoad int,
	areas []string,
	shift Shift,
	metrics Metrics,
) (*Partner, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	if currentLoad < 0 || currentLoad > DefaultMaxLoad {
		return nil, errs.NewValueIsOutOfRangeError("currentLoad", currentLoad, 0, DefaultMaxLoad)
	}

	p, err := NewPartner(id, name, email, phone, areas, shift)
	if err != nil {
		return nil, err
	}

	p.status = status
	p.currentLoad = currentLoad
	p.metrics = metrics
	return p, nil
}

// Validate ensures the Partner instance was properly constructed.
func (p *Partner) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPartnerIsNotConstructed
	}

	return nil
}

// IsEqual compares two partners by their unique identifiers.
func (p *Partner) IsEqual(other *Partner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *Partner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's human-readable name.
func (p *Partner) Name() string {
	return p.name
}

// Email returns the partner's contact email.
func (p *Partner) Email() string {
	return p.email
}

// Phone returns the partner's contact phone.
func (p *Partner) Phone() string {
	return p.phone
}

// Status returns the partner's availability flag.
func (p *Partner) Status() Status {
	return p.status
}

// IsActive reports whether the partner may receive assignments.
func (p *Partner) IsActive() bool {
	return p.status == Active
}

// CurrentLoad returns the number of orders the partner currently carries.
func (p *Partner) CurrentLoad() int {
	return p.currentLoad
}

// Areas returns the region keys the partner serves.
func (p *Partner) Areas() []string {
	return p.areas
}

// Shift returns the partner's daily availability window.
func (p *Partner) Shift() Shift {
	return p.shift
}

// PartnerMetrics returns the partner's cumulative delivery history.
func (p *Partner) PartnerMetrics() Metrics {
	return p.metrics
}

// ServesArea reports whether the partner covers the given region key.
// Matching is exact; no fuzzy or partial matching is performed.
func (p *Partner) ServesArea(area string) bool {
	return slices.Contains(p.areas, area)
}

// HasCapacity reports whether the partner carries strictly fewer orders than
// the given ceiling.
func (p *Partner) HasCapacity(maxLoad int) bool {
	return p.currentLoad < maxLoad
}

// SetStatus updates the partner's availability flag.
func (p *Partner) SetStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

// SetContact updates the partner's contact details.
// Empty fields are rejected; uniqueness is enforced by the store.
func (p *Partner) SetContact(name, email, phone string) error {
	return errors.Join(
		p.setName(name),
		p.setEmail(email),
		p.setPhone(phone),
	)
}

// SetAreas replaces the partner's coverage areas.
func (p *Partner) SetAreas(areas []string) error {
	return p.setAreas(areas)
}

// SetShift replaces the partner's shift window.
func (p *Partner) SetShift(shift Shift) error {
	return p.setShift(shift)
}

// TakeOrder increments the partner's load by one, enforcing the ceiling.
// Returns ErrPartnerAtCapacity when the partner is already full.
func (p *Partner) TakeOrder(maxLoad int) error {
	if !p.HasCapacity(maxLoad) {
		return ErrPartnerAtCapacity
	}

	p.currentLoad++
	return nil
}

// ReleaseOrder decrements the partner's load by one on a terminal order
// resolution, flooring at zero, and bumps the matching history counter.
// Pass completed=true for a delivery and false for a cancellation.
func (p *Partner) ReleaseOrder(completed bool) {
	if p.currentLoad > 0 {
		p.currentLoad--
	}

	if completed {
		p.metrics.CompletedOrders++
	} else {
		p.metrics.CancelledOrders++
	}
}

// CompletionRate returns the percentage of terminal orders that were
// delivered, or 0 when the partner has no terminal orders yet.
func (p *Partner) CompletionRate() float64 {
	terminal := p.metrics.CompletedOrders + p.metrics.CancelledOrders
	if terminal == 0 {
		return 0
	}
	return float64(p.metrics.CompletedOrders) / float64(terminal) * 100
}

// setID validates and sets the partner's unique identifier.
func (p *Partner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setName validates and sets the partner's name.
func (p *Partner) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

// setEmail validates and sets the partner's email.
func (p *Partner) setEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	p.email = email
	return nil
}

// setPhone validates and sets the partner's phone.
func (p *Partner) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	p.phone = phone
	return nil
}

// setAreas validates and sets the coverage areas.
// At least one non-empty region key is required.
func (p *Partner) setAreas(areas []string) error {
	if len(areas) == 0 {
		return errs.NewValueIsRequiredError("areas")
	}

	for i, area := range areas {
		if area == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("areas[%d]", i))
		}
	}

	p.areas = areas
	return nil
}

// setShift validates and sets the shift window.
func (p *Partner) setShift(shift Shift) error {
	if err := shift.Validate(); err != nil {
		return err
	}
	p.shift = shift
	return nil
}
