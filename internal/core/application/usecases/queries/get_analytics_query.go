package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAnalyticsQueryIsNotConstructed = errors.New(
	"GetAnalyticsQuery must be created via NewGetAnalyticsQuery constructor",
)

// GetAnalyticsQuery computes the on-demand analytics sections: the order
// status breakdown, per-partner completion rates, the five busiest areas and
// the last seven days of assignment attempts bucketed by UTC day.
type GetAnalyticsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAnalyticsQuery creates a query to compute the analytics sections.
func NewGetAnalyticsQuery() GetAnalyticsQuery {
	return GetAnalyticsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAnalyticsQuery) Validate() error {
	return q.guard.Validate(ErrGetAnalyticsQueryIsNotConstructed)
}

// OrderStatusBreakdown counts orders per lifecycle status.
type OrderStatusBreakdown struct {
	Total     int64
	Pending   int64
	Assigned  int64
	Picked    int64
	Delivered int64
	Cancelled int64
}

// PartnerPerformance is one active partner's delivery record.
// CompletionRate is completed over settled orders as a percentage, zero when
// the partner has settled nothing yet.
type PartnerPerformance struct {
	ID              kernel.UUID
	Name            string
	CurrentLoad     int
	CompletedOrders int64
	CancelledOrders int64
	CompletionRate  float64
}

// AreaOrderCount is one bucket of the busiest-areas ranking.
type AreaOrderCount struct {
	Area       string
	OrderCount int64
}

// DailyAssignmentTrend aggregates one UTC day of assignment attempts.
type DailyAssignmentTrend struct {
	Day         string
	Total       int64
	Success     int64
	Failed      int64
	SuccessRate float64
}

// GetAnalyticsQueryResponse carries every analytics section.
type GetAnalyticsQueryResponse struct {
	OrderStatus        OrderStatusBreakdown
	PartnerPerformance []PartnerPerformance
	TopAreas           []AreaOrderCount
	DailyTrends        []DailyAssignmentTrend
}
