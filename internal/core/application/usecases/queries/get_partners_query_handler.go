package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetPartnersQueryHandler retrieves partner read models from the database.
type GetPartnersQueryHandler struct {
	db *gorm.DB
}

// NewGetPartnersQueryHandler creates a handler for partner retrieval queries.
func NewGetPartnersQueryHandler(db *gorm.DB) GetPartnersQueryHandler {
	return GetPartnersQueryHandler{db: db}
}

// Handle executes the query to retrieve all partners in registration order.
func (h GetPartnersQueryHandler) Handle(
	ctx context.Context,
	query GetPartnersQuery,
) ([]GetPartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			email,
			phone,
			status,
			current_load,
			areas,
			shift_start,
			shift_end,
			rating,
			completed_orders,
			cancelled_orders
		FROM partners
		ORDER BY created_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]GetPartnersQueryResponse, 0)

	for rows.Next() {
		var resp GetPartnersQueryResponse
		var id uuid.UUID
		var areas pq.StringArray
		var shiftStart, shiftEnd int

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Email,
			&resp.Phone,
			&resp.Status,
			&resp.CurrentLoad,
			&areas,
			&shiftStart,
			&shiftEnd,
			&resp.Rating,
			&resp.CompletedOrders,
			&resp.CancelledOrders,
		)
		if err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = partnerID
		resp.Areas = areas

		start, timeErr := kernel.TimeOfDayFromMinutes(shiftStart)
		if timeErr != nil {
			return nil, timeErr
		}
		end, timeErr := kernel.TimeOfDayFromMinutes(shiftEnd)
		if timeErr != nil {
			return nil, timeErr
		}
		resp.ShiftStart = start.String()
		resp.ShiftEnd = end.String()

		partners = append(partners, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return partners, nil
}
