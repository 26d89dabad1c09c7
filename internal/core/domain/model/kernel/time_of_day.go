package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// MinutesPerDay is the number of minutes in a calendar day.
	MinutesPerDay = 24 * 60
)

// ErrTimeOfDayIsNotConstructed is returned when attempting to use an improperly
// initialized TimeOfDay. Instances must be created via ParseTimeOfDay or
// TimeOfDayFromMinutes to ensure validity.
var ErrTimeOfDayIsNotConstructed = errs.NewValueIsRequiredError(
	"TimeOfDay must be created via ParseTimeOfDay or TimeOfDayFromMinutes")

// TimeOfDay represents a wall-clock time as minutes since midnight.
// It is an immutable value object parsed from strict "HH:mm" input, used for
// order scheduling and partner shift windows. Comparisons happen on the
// minutes value, which makes overnight-window arithmetic straightforward.
//
// The zero value is invalid and will fail validation - use constructors
// to create instances.
//
// Example:
//
//	t, err := kernel.ParseTimeOfDay("14:30")
//	if err != nil {
//	    // Handle malformed input
//	}
//	fmt.Println(t)           // Output: 14:30
//	fmt.Println(t.Minutes()) // Output: 870
type TimeOfDay struct { //nolint:recvcheck //using for validation
	minutes int
	guard   guard.ConstructorGuard
}

// ParseTimeOfDay parses a strict "HH:mm" string into a TimeOfDay.
// Hours must be 00..23 and minutes 00..59, both zero-padded to two digits.
// Malformed input is a validation error, never silently coerced.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause(
			"time of day", fmt.Errorf("%q is not in HH:mm format", s))
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hours, &minutes); err != nil {
		return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause(
			"time of day", fmt.Errorf("%q is not in HH:mm format", s))
	}

	if hours < 0 || hours > 23 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hours", hours, 0, 23)
	}
	if minutes < 0 || minutes > 59 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minutes", minutes, 0, 59)
	}

	return TimeOfDay{
		minutes: hours*60 + minutes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// TimeOfDayFromMinutes creates a TimeOfDay from raw minutes since midnight.
// Used when reconstructing values from persistence.
// Returns an error if minutes is outside [0, MinutesPerDay).
func TimeOfDayFromMinutes(minutes int) (TimeOfDay, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minutes since midnight", minutes, 0, MinutesPerDay-1)
	}

	return TimeOfDay{
		minutes: minutes,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.minutes
}

// String returns the "HH:mm" representation.
// Implements the fmt.Stringer interface.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// IsEqual compares two times by their minutes value.
func (t TimeOfDay) IsEqual(other TimeOfDay) bool {
	return t.minutes == other.minutes
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

// Validate ensures the TimeOfDay was created through a constructor.
func (t TimeOfDay) Validate() error {
	return t.guard.Validate(ErrTimeOfDayIsNotConstructed)
}
