package assignment

import (
	"errors"

	"dispatch/internal/pkg/errs"
)

var (
	// ErrMetricsIsNotConstructed is returned when using an improperly initialized Metrics.
	ErrMetricsIsNotConstructed = errors.New("Metrics must be created via NewMetrics or RestoreMetrics")
)

// Metrics is the rolling assignment summary. Exactly one record exists in the
// system; it is lazily created with zeroed fields on first use and updated
// after every assignment attempt, never deleted.
//
// Two fold modes are supported:
//
//   - FoldAttempt is used by the single-order path. It recomputes the success
//     rate from full ledger counts, trusting the ledger as source of truth.
//   - FoldRun is used by the batch sweep. It blends the run's rate into the
//     existing rate as a weighted average, trading a little precision for not
//     re-counting the ledger once per swept order. The two modes may diverge
//     slightly over time; the metric is advisory, the ledger is authoritative.
type Metrics struct {
	// totalAssigned counts the attempts folded into this record
	totalAssigned int64
	// successRate is the percentage of successful attempts, 0..100
	successRate float64
	// averageTime is reserved for future assignment-latency tracking
	averageTime float64
	// failureReasons accumulates the failure histogram
	failureReasons ReasonCounts
	// isConstructed ensures the record was created via a constructor
	isConstructed bool
}

// NewMetrics creates the zeroed rolling summary used when no record exists yet.
func NewMetrics() *Metrics {
	return &Metrics{
		failureReasons: make(ReasonCounts),
		isConstructed:  true,
	}
}

// RestoreMetrics reconstructs the rolling summary from persistence.
// Negative counts and rates outside [0, 100] surface as errors instead of
// propagating through future folds.
func RestoreMetrics(totalAssigned int64, successRate, averageTime float64, failureReasons ReasonCounts) (*Metrics, error) {
	if totalAssigned < 0 {
		return nil, errs.NewValueIsOutOfRangeError("totalAssigned", totalAssigned, 0, "unbounded")
	}
	if successRate < 0 || successRate > 100 {
		return nil, errs.NewValueIsOutOfRangeError("successRate", successRate, 0, 100)
	}
	for reason, count := range failureReasons {
		if count < 0 {
			return nil, errs.NewValueIsOutOfRangeError("failureReasons["+reason+"]", count, 0, "unbounded")
		}
	}

	if failureReasons == nil {
		failureReasons = make(ReasonCounts)
	}

	return &Metrics{
		totalAssigned:  totalAssigned,
		successRate:    successRate,
		averageTime:    averageTime,
		failureReasons: failureReasons.Clone(),
		isConstructed:  true,
	}, nil
}

// Validate ensures the Metrics record was properly constructed.
func (m *Metrics) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMetricsIsNotConstructed
	}
	return nil
}

// TotalAssigned returns the number of attempts folded into this record.
func (m *Metrics) TotalAssigned() int64 {
	return m.totalAssigned
}

// SuccessRate returns the rolling success percentage, 0..100.
func (m *Metrics) SuccessRate() float64 {
	return m.successRate
}

// AverageTime returns the reserved assignment-latency figure.
func (m *Metrics) AverageTime() float64 {
	return m.averageTime
}

// FailureReasons returns a copy of the failure histogram.
func (m *Metrics) FailureReasons() ReasonCounts {
	return m.failureReasons.Clone()
}

// FoldAttempt folds a single attempt into the summary in ledger-recompute
// mode: totalAssigned grows by one and the success rate is recomputed from
// the full ledger counts supplied by the caller. failureReason is empty for
// successful attempts.
func (m *Metrics) FoldAttempt(ledgerSuccessCount, ledgerTotalCount int64, failureReason string) error {
	if ledgerTotalCount <= 0 {
		return errs.NewValueIsInvalidError("ledger total count")
	}
	if ledgerSuccessCount < 0 || ledgerSuccessCount > ledgerTotalCount {
		return errs.NewValueIsOutOfRangeError("ledger success count", ledgerSuccessCount, 0, ledgerTotalCount)
	}

	m.totalAssigned++
	m.successRate = float64(ledgerSuccessCount) / float64(ledgerTotalCount) * 100

	if failureReason != "" {
		m.failureReasons.Add(failureReason)
	}

	return nil
}

// FoldRun folds a batch run into the summary in weighted-average mode:
//
//	newRate = (oldRate*oldTotal + runRate*runTotal) / (oldTotal + runTotal)
//
// and the run's failure histogram is merged additively. A run with no
// attempts leaves the record untouched.
func (m *Metrics) FoldRun(runSuccessCount, runFailureCount int64, runReasons ReasonCounts) error {
	if runSuccessCount < 0 || runFailureCount < 0 {
		return errs.NewValueIsOutOfRangeError("run counts", runSuccessCount+runFailureCount, 0, "unbounded")
	}

	runTotal := runSuccessCount + runFailureCount
	if runTotal == 0 {
		return nil
	}

	runRate := float64(runSuccessCount) / float64(runTotal) * 100
	oldTotal := m.totalAssigned

	m.totalAssigned += runTotal
	m.successRate = (m.successRate*float64(oldTotal) + runRate*float64(runTotal)) / float64(m.totalAssigned)
	m.failureReasons.Merge(runReasons)

	return nil
}

// RecordCancellation bumps the "Order Cancelled" failure reason. Called by
// the order-status flow when an assigned order is cancelled downstream; this
// is the one fold that does not correspond to an assignment attempt.
func (m *Metrics) RecordCancellation() {
	m.failureReasons.Add(ReasonOrderCancelled)
}
