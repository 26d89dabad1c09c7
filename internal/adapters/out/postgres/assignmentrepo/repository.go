package assignmentrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"

	"gorm.io/gorm"
)

// GormAssignmentRepository implements AssignmentRepository using GORM.
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewGormAssignmentRepository creates a new GORM assignment ledger repository.
func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

// Add appends a new entry to the ledger.
func (r *GormAssignmentRepository) Add(ctx context.Context, entry *assignment.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// CountByStatus returns the total number of ledger entries and how many of
// them are successful. Inside a transaction the counts include entries added
// earlier in the same transaction, which makes the metrics fold see its own
// attempt.
func (r *GormAssignmentRepository) CountByStatus(ctx context.Context) (int64, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&AssignmentDTO{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}

	var success int64
	if err := r.db.WithContext(ctx).
		Model(&AssignmentDTO{}).
		Where("status = ?", assignment.Success.String()).
		Count(&success).Error; err != nil {
		return 0, 0, err
	}

	return total, success, nil
}

// List retrieves ledger entries recorded in the half-open interval [from, to),
// newest first. A zero time bound is unbounded on that side.
func (r *GormAssignmentRepository) List(ctx context.Context, from, to time.Time) ([]*assignment.Entry, error) {
	query := r.db.WithContext(ctx).Model(&AssignmentDTO{})
	if !from.IsZero() {
		query = query.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("timestamp < ?", to)
	}

	var dtos []AssignmentDTO
	if err := query.Order("timestamp DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]*assignment.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
