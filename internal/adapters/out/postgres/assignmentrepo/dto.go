// Package assignmentrepo provides data transfer objects and mapping functions
// for the assignment ledger. The ledger is append only, so this package never
// updates or deletes rows.
package assignmentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting ledger entries.
// One row is written per assignment attempt, successful or failed.
type AssignmentDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerID *uuid.UUID `gorm:"type:uuid;index"`
	Status    string     `gorm:"type:varchar(16);not null;index"`
	Reason    string     `gorm:"type:varchar(255)"`
	Timestamp time.Time  `gorm:"not null;index"`
}

// TableName specifies the database table name for ledger entries.
// Overrides GORM's default naming convention to use "assignments".
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts a ledger entry to its database representation.
func fromDomain(entry *assignment.Entry) AssignmentDTO {
	var partnerID *uuid.UUID
	if id := entry.PartnerID(); id != nil {
		raw := id.Bytes()
		partnerID = &raw
	}

	return AssignmentDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		PartnerID: partnerID,
		Status:    entry.Status().String(),
		Reason:    entry.Reason(),
		Timestamp: entry.Timestamp(),
	}
}

// toDomain converts a database DTO to a ledger entry using RestoreEntry.
func toDomain(dto AssignmentDTO) (*assignment.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.PartnerID != nil {
		pID, partnerErr := kernel.UUIDFromBytes((*dto.PartnerID)[:])
		if partnerErr != nil {
			return nil, partnerErr
		}

		partnerID = &pID
	}

	status, err := assignment.EntryStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreEntry(id, orderID, partnerID, status, dto.Reason, dto.Timestamp)
}
