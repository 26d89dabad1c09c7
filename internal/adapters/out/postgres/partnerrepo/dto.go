// Package partnerrepo provides data transfer objects and mapping functions for partner persistence.
// This package implements the repository pattern for the partner domain aggregate, handling
// the conversion between domain entities and database representations.
package partnerrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PartnerDTO represents the database structure for persisting partner aggregates.
// Coverage areas are stored as a native text array; shift bounds are stored as
// minutes since midnight so overnight shifts round-trip without date math.
type PartnerDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name            string         `gorm:"type:varchar(255);not null"`
	Email           string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone           string         `gorm:"type:varchar(32);uniqueIndex;not null"`
	Status          string         `gorm:"type:varchar(16);not null;index"`
	CurrentLoad     int            `gorm:"type:int;not null"`
	Areas           pq.StringArray `gorm:"type:text[];not null"`
	ShiftStart      int            `gorm:"type:smallint;not null"`
	ShiftEnd        int            `gorm:"type:smallint;not null"`
	Rating          float64        `gorm:"type:numeric(4,2);not null"`
	CompletedOrders int            `gorm:"type:int;not null"`
	CancelledOrders int            `gorm:"type:int;not null"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

// TableName specifies the database table name for partner entities.
// Overrides GORM's default naming convention to use "partners".
func (PartnerDTO) TableName() string {
	return "partners"
}

// fromDomain converts a partner domain aggregate to its database representation.
func fromDomain(aggregate *partner.Partner) PartnerDTO {
	metrics := aggregate.PartnerMetrics()
	return PartnerDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		Email:           aggregate.Email(),
		Phone:           aggregate.Phone(),
		Status:          aggregate.Status().String(),
		CurrentLoad:     aggregate.CurrentLoad(),
		Areas:           aggregate.Areas(),
		ShiftStart:      aggregate.Shift().Start().Minutes(),
		ShiftEnd:        aggregate.Shift().End().Minutes(),
		Rating:          metrics.Rating,
		CompletedOrders: metrics.CompletedOrders,
		CancelledOrders: metrics.CancelledOrders,
	}
}

// toDomain converts a database DTO to a partner domain aggregate.
// Reconstructs the complete aggregate including load and accumulated metrics
// using RestorePartner.
func toDomain(dto PartnerDTO) (*partner.Partner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := partner.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	shiftStart, err := kernel.TimeOfDayFromMinutes(dto.ShiftStart)
	if err != nil {
		return nil, err
	}

	shiftEnd, err := kernel.TimeOfDayFromMinutes(dto.ShiftEnd)
	if err != nil {
		return nil, err
	}

	shift, err := partner.NewShift(shiftStart, shiftEnd)
	if err != nil {
		return nil, err
	}

	return partner.RestorePartner(
		id,
		dto.Name,
		dto.Email,
		dto.Phone,
		status,
		dto.CurrentLoad,
		dto.Areas,
		shift,
		partner.Metrics{
			Rating:          dto.Rating,
			CompletedOrders: dto.CompletedOrders,
			CancelledOrders: dto.CancelledOrders,
		},
	)
}
