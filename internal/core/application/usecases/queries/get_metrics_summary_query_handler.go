package queries

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
)

// GetMetricsSummaryQueryHandler retrieves the stored metrics record.
// The record is a singleton maintained by the assignment workflows; when no
// attempt has ever been recorded the summary reads as all zeroes.
type GetMetricsSummaryQueryHandler struct {
	db *gorm.DB
}

// NewGetMetricsSummaryQueryHandler creates a handler for metrics summary queries.
func NewGetMetricsSummaryQueryHandler(db *gorm.DB) GetMetricsSummaryQueryHandler {
	return GetMetricsSummaryQueryHandler{db: db}
}

// Handle executes the query to retrieve the metrics summary.
// Reason buckets are returned largest first.
func (h GetMetricsSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetMetricsSummaryQuery,
) (GetMetricsSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMetricsSummaryQueryResponse{}, err
	}

	var resp GetMetricsSummaryQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			total_assigned,
			success_rate,
			average_time
		FROM assignment_metrics
		LIMIT 1
	`).Row()

	err := row.Scan(&resp.TotalAssigned, &resp.SuccessRate, &resp.AverageTime)
	if errors.Is(err, sql.ErrNoRows) {
		resp.FailureReasons = []FailureReasonCount{}
		return resp, nil
	}
	if err != nil {
		return GetMetricsSummaryQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			reason,
			count
		FROM assignment_failure_reasons
		ORDER BY count DESC, reason
	`).Rows()
	if err != nil {
		return GetMetricsSummaryQueryResponse{}, err
	}
	defer rows.Close()

	resp.FailureReasons = make([]FailureReasonCount, 0)
	for rows.Next() {
		var bucket FailureReasonCount
		if err = rows.Scan(&bucket.Reason, &bucket.Count); err != nil {
			return GetMetricsSummaryQueryResponse{}, err
		}
		resp.FailureReasons = append(resp.FailureReasons, bucket)
	}

	if err = rows.Err(); err != nil {
		return GetMetricsSummaryQueryResponse{}, err
	}

	return resp, nil
}
