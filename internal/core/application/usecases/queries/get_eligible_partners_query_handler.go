package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetEligiblePartnersQueryHandler retrieves assignable partners for an area.
// Eligibility mirrors the dispatch rules: active status, load below the
// capacity ceiling, exact area coverage, and, when a time is given, the
// shift window including overnight wrap.
type GetEligiblePartnersQueryHandler struct {
	db      *gorm.DB
	maxLoad int
}

// NewGetEligiblePartnersQueryHandler creates a handler for eligible partner queries.
func NewGetEligiblePartnersQueryHandler(db *gorm.DB) GetEligiblePartnersQueryHandler {
	return GetEligiblePartnersQueryHandler{db: db, maxLoad: partner.DefaultMaxLoad}
}

// Handle executes the query. Partners come back in registration order, the
// same order the dispatcher scans them.
func (h GetEligiblePartnersQueryHandler) Handle(
	ctx context.Context,
	query GetEligiblePartnersQuery,
) ([]GetEligiblePartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			name,
			phone,
			current_load,
			areas,
			shift_start,
			shift_end
		FROM partners
		WHERE status = ?
		  AND current_load < ?
		  AND ? = ANY(areas)
	`
	args := []any{partner.Active.String(), h.maxLoad, query.Area()}

	if at := query.At(); at != nil {
		// Inclusive on both ends; a shift whose end precedes its start wraps
		// past midnight.
		sqlQuery += `
		  AND (
			(shift_start <= shift_end AND ? BETWEEN shift_start AND shift_end)
			OR (shift_start > shift_end AND (? >= shift_start OR ? <= shift_end))
		  )
		`
		minutes := at.Minutes()
		args = append(args, minutes, minutes, minutes)
	}

	sqlQuery += ` ORDER BY created_at`

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]GetEligiblePartnersQueryResponse, 0)

	for rows.Next() {
		var resp GetEligiblePartnersQueryResponse
		var id uuid.UUID
		var areas pq.StringArray
		var shiftStart, shiftEnd int

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Phone,
			&resp.CurrentLoad,
			&areas,
			&shiftStart,
			&shiftEnd,
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
