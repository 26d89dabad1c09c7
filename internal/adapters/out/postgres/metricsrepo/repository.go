package metricsrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/assignment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormMetricsRepository implements MetricsRepository using GORM.
//
// GetForUpdate locks the singleton row with SELECT ... FOR UPDATE, so it must
// run inside a transaction. Concurrent folds serialize on that lock, which is
// what makes read-modify-write on the metrics record safe.
type GormMetricsRepository struct {
	db *gorm.DB
}

// NewGormMetricsRepository creates a new GORM metrics repository.
func NewGormMetricsRepository(db *gorm.DB) *GormMetricsRepository {
	return &GormMetricsRepository{db: db}
}

// GetForUpdate loads the metrics record under an exclusive row lock, creating
// a zeroed record on first use. The lock is held until the surrounding
// transaction ends.
func (r *GormMetricsRepository) GetForUpdate(ctx context.Context) (*assignment.Metrics, error) {
	var dto MetricsDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed := MetricsDTO{ID: singletonID}
		if err = r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&seed).Error; err != nil {
			return nil, err
		}

		err = r.db.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&dto, "id = ?", singletonID).Error
	}
	if err != nil {
		return nil, err
	}

	reasons, err := r.loadReasons(ctx)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreMetrics(dto.TotalAssigned, dto.SuccessRate, dto.AverageTime, reasons)
}

// Save persists the metrics record and its failure reason histogram.
// Histogram buckets are upserted by reason; counts only grow, so buckets are
// never removed.
func (r *GormMetricsRepository) Save(ctx context.Context, metrics *assignment.Metrics) error {
	if err := metrics.Validate(); err != nil {
		return err
	}

	dto := MetricsDTO{
		ID:            singletonID,
		TotalAssigned: metrics.TotalAssigned(),
		SuccessRate:   metrics.SuccessRate(),
		AverageTime:   metrics.AverageTime(),
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_assigned", "success_rate", "average_time"}),
		}).
		Create(&dto).Error; err != nil {
		return err
	}

	for reason, count := range metrics.FailureReasons() {
		bucket := FailureReasonDTO{Reason: reason, Count: count}
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "reason"}},
				DoUpdates: clause.AssignmentColumns([]string{"count"}),
			}).
			Create(&bucket).Error; err != nil {
			return err
		}
	}

	return nil
}

// loadReasons reads the full failure reason histogram.
func (r *GormMetricsRepository) loadReasons(ctx context.Context) (assignment.ReasonCounts, error) {
	var dtos []FailureReasonDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	reasons := make(assignment.ReasonCounts, len(dtos))
	for _, dto := range dtos {
		reasons[dto.Reason] = dto.Count
	}

	return reasons, nil
}
