package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetMetricsSummaryQueryIsNotConstructed = errors.New(
	"GetMetricsSummaryQuery must be created via NewGetMetricsSummaryQuery constructor",
)

// GetMetricsSummaryQuery retrieves the stored assignment metrics record:
// total attempts, success rate, average assignment time and the failure
// reason histogram.
type GetMetricsSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetMetricsSummaryQuery creates a query to retrieve the metrics summary.
func NewGetMetricsSummaryQuery() GetMetricsSummaryQuery {
	return GetMetricsSummaryQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetMetricsSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetMetricsSummaryQueryIsNotConstructed)
}

// FailureReasonCount is one bucket of the failure reason histogram.
type FailureReasonCount struct {
	Reason string
	Count  int64
}

// GetMetricsSummaryQueryResponse represents the stored metrics record.
// A deployment that has never recorded an attempt reads as all zeroes.
type GetMetricsSummaryQueryResponse struct {
	TotalAssigned  int64
	SuccessRate    float64
	AverageTime    float64
	FailureReasons []FailureReasonCount
}
