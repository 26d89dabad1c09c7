// Package partner provides domain entities and business logic for delivery
// partner management. It implements the Partner aggregate root with capacity
// tracking and availability rules.
//
// The package includes:
//   - Partner: The aggregate root managing identity, contact details, coverage
//     areas, shift window, current load, and cumulative delivery metrics
//   - Status: The active/inactive availability flag
//   - Shift: A time window value object that may wrap past midnight
//
// Key business rules:
//   - Partners must have a name, unique email and phone, at least one coverage
//     area, and a shift window
//   - Current load is bounded between 0 and the capacity ceiling
//     (DefaultMaxLoad unless configured otherwise); the ceiling is a hard
//     constraint enforced before and at the point of mutation
//   - Load increments exactly once per successful assignment and decrements
//     exactly once per terminal order resolution
//   - Completed and cancelled counters accumulate on terminal resolutions
package partner
