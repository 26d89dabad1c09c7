package partner

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrShiftIsNotConstructed is returned when attempting to use an improperly
// initialized Shift. Shifts must be created via NewShift.
var ErrShiftIsNotConstructed = errs.NewValueIsRequiredError("shift must be created via NewShift constructor")

// Shift is a partner's availability window for a day, bounded by two
// wall-clock times. The window is inclusive on both ends. When end is earlier
// than start the shift wraps past midnight (an overnight shift): 22:00-06:00
// covers late evening and early morning.
//
// Shift is an immutable value object. The zero value is invalid and will fail
// validation - use NewShift to create instances.
//
// Example:
//
//	start, _ := kernel.ParseTimeOfDay("22:00")
//	end, _ := kernel.ParseTimeOfDay("06:00")
//	shift, _ := partner.NewShift(start, end)
//
//	lateNight, _ := kernel.ParseTimeOfDay("23:30")
//	shift.Contains(lateNight) // true
type Shift struct { //nolint:recvcheck //using for validation
	start kernel.TimeOfDay
	end   kernel.TimeOfDay
	guard guard.ConstructorGuard
}

// NewShift creates a Shift from validated start and end times.
// A shift whose end precedes its start is an overnight shift, not an error.
func NewShift(start, end kernel.TimeOfDay) (Shift, error) {
	if err := start.Validate(); err != nil {
		return Shift{}, errs.NewValueIsRequiredErrorWithCause("shift.start", err)
	}
	if err := end.Validate(); err != nil {
		return Shift{}, errs.NewValueIsRequiredErrorWithCause("shift.end", err)
	}

	return Shift{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Start returns the shift's opening time.
func (s Shift) Start() kernel.TimeOfDay {
	return s.start
}

// End returns the shift's closing time.
func (s Shift) End() kernel.TimeOfDay {
	return s.end
}

// IsOvernight reports whether the window wraps past midnight.
func (s Shift) IsOvernight() bool {
	return s.end.Before(s.start)
}

// Contains reports whether t falls within the shift window, inclusive on both
// ends. Overnight shifts wrap: t matches when it is at or after the start OR
// at or before the end.
func (s Shift) Contains(t kernel.TimeOfDay) bool {
	tm, start, end := t.Minutes(), s.start.Minutes(), s.end.Minutes()

	if s.IsOvernight() {
		return tm >= start || tm <= end
	}

	return tm >= start && tm <= end
}

// String returns the "HH:mm-HH:mm" representation of the window.
func (s Shift) String() string {
	return fmt.Sprintf("%s-%s", s.start, s.end)
}

// Validate ensures the Shift was created through NewShift.
func (s Shift) Validate() error {
	return s.guard.Validate(ErrShiftIsNotConstructed)
}
