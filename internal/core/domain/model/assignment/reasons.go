package assignment

// Failure reason strings recorded in the ledger and accumulated in the
// metrics histogram. Matching is by exact string, so these are fixed
// constants rather than free-form messages.
const (
	// ReasonPartnerInactive - the requested partner is not active.
	ReasonPartnerInactive = "Partner is inactive"
	// ReasonPartnerAtCapacity - the requested partner already carries the ceiling.
	ReasonPartnerAtCapacity = "Partner at maximum capacity"
	// ReasonAreaNotServed - the requested partner does not cover the order's area.
	ReasonAreaNotServed = "Partner does not serve this area"
	// ReasonOutsideShift - the order's scheduled time is outside the partner's shift.
	ReasonOutsideShift = "Order time outside partner's shift"

	// ReasonNoEligiblePartners - automatic mode found no active partner with
	// spare capacity serving the area.
	ReasonNoEligiblePartners = "No eligible partners available"
	// ReasonNoPartnersForScheduledTime - automatic mode found covering partners
	// but none on shift at the scheduled time.
	ReasonNoPartnersForScheduledTime = "No partners available for scheduled time"

	// ReasonBatchNoPartnersForArea - batch sweep found no available partner
	// for the order's area.
	ReasonBatchNoPartnersForArea = "No available partners for this area"
	// ReasonBatchNoPartnersAtTime - batch sweep found covering partners but
	// none on shift at the scheduled time.
	ReasonBatchNoPartnersAtTime = "No partners available at scheduled time"

	// ReasonOrderCancelled - an assigned order was cancelled downstream.
	ReasonOrderCancelled = "Order Cancelled"
)

// ReasonAlreadyAssigned builds the failure reason for an assignment attempt
// against an order that already left the pending state. The order's current
// status is part of the recorded string.
func ReasonAlreadyAssigned(status string) string {
	return "Order is already " + status
}

// ReasonCounts maps a failure reason to its cumulative count.
// Merge semantics are additive: sum on key match, insert otherwise.
type ReasonCounts map[string]int64

// Add increments the count for a reason, inserting it when absent.
func (rc ReasonCounts) Add(reason string) {
	rc[reason]++
}

// Merge folds another histogram into this one additively.
func (rc ReasonCounts) Merge(other ReasonCounts) {
	for reason, count := range other {
		rc[reason] += count
	}
}

// Total returns the sum of all counts.
func (rc ReasonCounts) Total() int64 {
	var total int64
	for _, count := range rc {
		total += count
	}
	return total
}

// Clone returns an independent copy of the histogram.
func (rc ReasonCounts) Clone() ReasonCounts {
	clone := make(ReasonCounts, len(rc))
	for reason, count := range rc {
		clone[reason] = count
	}
	return clone
}
