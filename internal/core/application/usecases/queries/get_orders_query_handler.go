package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve orders, oldest first.
// The scheduled time is rendered back to HH:mm.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			order_number,
			customer_name,
			customer_phone,
			area,
			scheduled_for,
			status,
			partner_id,
			total_amount
		FROM orders
	`
	args := make([]any, 0, 1)
	if query.Status() != nil {
		sqlQuery += ` WHERE status = ?`
		args = append(args, query.Status().String())
	}
	sqlQuery += ` ORDER BY created_at`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)

	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var partnerID uuid.NullUUID
		var scheduledFor int

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.CustomerName,
			&resp.CustomerPhone,
			&resp.Area,
			&scheduledFor,
			&resp.Status,
			&partnerID,
			&resp.TotalAmount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		if partnerID.Valid {
			assigned, idErr := kernel.UUIDFromBytes(partnerID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.PartnerID = &assigned
		}

		scheduled, timeErr := kernel.TimeOfDayFromMinutes(scheduledFor)
		if timeErr != nil {
			return nil, timeErr
		}
		resp.ScheduledFor = scheduled.String()

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
