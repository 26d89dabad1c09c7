package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAnalyticsQueryHandler computes the analytics sections with aggregate SQL.
// Each section is one round trip; nothing is cached, callers see live data.
type GetAnalyticsQueryHandler struct {
	db *gorm.DB
}

// NewGetAnalyticsQueryHandler creates a handler for analytics queries.
func NewGetAnalyticsQueryHandler(db *gorm.DB) GetAnalyticsQueryHandler {
	return GetAnalyticsQueryHandler{db: db}
}

// Handle executes the analytics query.
func (h GetAnalyticsQueryHandler) Handle(
	ctx context.Context,
	query GetAnalyticsQuery,
) (GetAnalyticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}

	var resp GetAnalyticsQueryResponse
	var err error

	if resp.OrderStatus, err = h.orderStatusBreakdown(ctx); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if resp.PartnerPerformance, err = h.partnerPerformance(ctx); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if resp.TopAreas, err = h.topAreas(ctx); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}
	if resp.DailyTrends, err = h.dailyTrends(ctx); err != nil {
		return GetAnalyticsQueryResponse{}, err
	}

	return resp, nil
}

func (h GetAnalyticsQueryHandler) orderStatusBreakdown(ctx context.Context) (OrderStatusBreakdown, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return OrderStatusBreakdown{}, err
	}
	defer rows.Close()

	var breakdown OrderStatusBreakdown

	for rows.Next() {
		var status string
		var count int64

		if err = rows.Scan(&status, &count); err != nil {
			return OrderStatusBreakdown{}, err
		}

		breakdown.Total += count
		switch status {
		case order.Pending.String():
			breakdown.Pending = count
		case order.Assigned.String():
			breakdown.Assigned = count
		case order.Picked.String():
			breakdown.Picked = count
		case order.Delivered.String():
			breakdown.Delivered = count
		case order.Cancelled.String():
			breakdown.Cancelled = count
		}
	}

	return breakdown, rows.Err()
}

func (h GetAnalyticsQueryHandler) partnerPerformance(ctx context.Context) ([]PartnerPerformance, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			current_load,
			completed_orders,
			cancelled_orders
		FROM partners
		WHERE status = ?
		ORDER BY created_at
	`, partner.Active.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	performance := make([]PartnerPerformance, 0)

	for rows.Next() {
		var perf PartnerPerformance
		var id uuid.UUID

		err = rows.Scan(&id, &perf.Name, &perf.CurrentLoad, &perf.CompletedOrders, &perf.CancelledOrders)
		if err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		perf.ID = partnerID

		if settled := perf.CompletedOrders + perf.CancelledOrders; settled > 0 {
			perf.CompletionRate = float64(perf.CompletedOrders) / float64(settled) * 100
		}

		performance = append(performance, perf)
	}

	return performance, rows.Err()
}

func (h GetAnalyticsQueryHandler) topAreas(ctx context.Context) ([]AreaOrderCount, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			area,
			COUNT(*) AS order_count
		FROM orders
		GROUP BY area
		ORDER BY order_count DESC, area
		LIMIT 5
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	areas := make([]AreaOrderCount, 0, 5)

	for rows.Next() {
		var bucket AreaOrderCount
		if err = rows.Scan(&bucket.Area, &bucket.OrderCount); err != nil {
			return nil, err
		}
		areas = append(areas, bucket)
	}

	return areas, rows.Err()
}

func (h GetAnalyticsQueryHandler) dailyTrends(ctx context.Context) ([]DailyAssignmentTrend, error) {
	since := time.Now().UTC().AddDate(0, 0, -7)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			(timestamp AT TIME ZONE 'UTC')::date AS day,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'success') AS success
		FROM assignments
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day
	`, since).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trends := make([]DailyAssignmentTrend, 0, 7)

	for rows.Next() {
		var trend DailyAssignmentTrend
		var day time.Time

		if err = rows.Scan(&day, &trend.Total, &trend.Success); err != nil {
			return nil, err
		}

		trend.Day = day.Format("2006-01-02")
		trend.Failed = trend.Total - trend.Success
		if trend.Total > 0 {
			trend.SuccessRate = float64(trend.Success) / float64(trend.Total) * 100
		}

		trends = append(trends, trend)
	}

	return trends, rows.Err()
}
