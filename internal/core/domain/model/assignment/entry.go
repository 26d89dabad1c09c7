package assignment

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewSuccessEntry or NewFailedEntry")
)

// EntryStatus marks a ledger entry as a successful or failed attempt.
type EntryStatus int

const (
	// EntryStatusUnknown represents an invalid or undefined entry status.
	EntryStatusUnknown EntryStatus = iota

	// Success marks an attempt that assigned the order to a partner.
	Success

	// Failed marks an attempt blocked by a business rule.
	Failed
)

// Validate checks if the EntryStatus value is valid.
func (s EntryStatus) Validate() error {
	if s != Success && s != Failed {
		return errs.NewValueIsInvalidErrorWithCause(
			"entry status", fmt.Errorf("%d is not a valid entry status", s))
	}
	return nil
}

// EntryStatusFromString parses a stored status string back into an EntryStatus.
func EntryStatusFromString(s string) (EntryStatus, error) {
	switch s {
	case "success":
		return Success, nil
	case "failed":
		return Failed, nil
	default:
		return EntryStatusUnknown, errs.NewValueIsInvalidErrorWithCause(
			"entry status", fmt.Errorf("%q is not a valid entry status", s))
	}
}

// String returns "success", "failed", or "unknown".
func (s EntryStatus) String() string {
	switch s {
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is a single record in the append-only assignment ledger. One entry is
// written per attempt - successful or failed - including repeated failures for
// the same order across batch runs. Entries are immutable once written.
//
// Invariants:
//   - A successful entry carries the assigned partner and an empty reason
//   - A failed entry carries a non-empty reason; the partner is present only
//     when a specific partner was considered and rejected
type Entry struct {
	// id uniquely identifies the ledger entry
	id kernel.UUID
	// orderID is the order the attempt concerned
	orderID kernel.UUID
	// partnerID is the assigned (or explicitly rejected) partner, nil when no
	// candidate existed
	partnerID *kernel.UUID
	// status marks the attempt outcome
	status EntryStatus
	// reason is the business rule that blocked a failed attempt
	reason string
	// timestamp is when the attempt was recorded
	timestamp time.Time
	// isConstructed ensures the entry was created via a constructor
	isConstructed bool
}

// NewSuccessEntry records a successful assignment of orderID to partnerID.
func NewSuccessEntry(orderID, partnerID kernel.UUID, timestamp time.Time) (*Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if err := partnerID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("partnerId", err)
	}

	return &Entry{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		partnerID:     &partnerID,
		status:        Success,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// NewFailedEntry records a failed assignment attempt for orderID with the
// blocking reason. partnerID is nil unless a specific partner was considered.
func NewFailedEntry(orderID kernel.UUID, partnerID *kernel.UUID, reason string, timestamp time.Time) (*Entry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}
	if partnerID != nil {
		if err := partnerID.Validate(); err != nil {
			return nil, errs.NewValueIsRequiredErrorWithCause("partnerId", err)
		}
	}

	return &Entry{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		partnerID:     partnerID,
		status:        Failed,
		reason:        reason,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// RestoreEntry reconstructs a ledger entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	orderID kernel.UUID,
	partnerID *kernel.UUID,
	status EntryStatus,
	reason string,
	timestamp time.Time,
) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status == Failed && reason == "" {
		return nil, errs.NewValueIsRequiredError("reason")
	}
	if status == Success && partnerID == nil {
		return nil, errs.NewValueIsRequiredError("partnerId")
	}

	return &Entry{
		id:            id,
		orderID:       orderID,
		partnerID:     partnerID,
		status:        status,
		reason:        reason,
		timestamp:     timestamp,
		isConstructed: true,
	}, nil
}

// Validate ensures the Entry was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID {
	return e.id
}

// OrderID returns the order this attempt concerned.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// PartnerID returns the assigned or rejected partner, nil when no candidate existed.
func (e *Entry) PartnerID() *kernel.UUID {
	return e.partnerID
}

// Status returns the attempt outcome.
func (e *Entry) Status() EntryStatus {
	return e.status
}

// IsSuccess reports whether the attempt assigned the order.
func (e *Entry) IsSuccess() bool {
	return e.status == Success
}

// Reason returns the blocking reason, empty for successful attempts.
func (e *Entry) Reason() string {
	return e.reason
}

// Timestamp returns when the attempt was recorded.
func (e *Entry) Timestamp() time.Time {
	return e.timestamp
}
