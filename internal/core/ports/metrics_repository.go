package ports

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"
)

// MetricsRepository defines the persistence contract for the singleton
// assignment metrics record.
type MetricsRepository interface {
	// GetForUpdate loads the metrics record under an exclusive row lock,
	// creating a zeroed record on first use. The lock is held until the
	// surrounding transaction ends, so concurrent folds serialize.
	GetForUpdate(ctx context.Context) (*assignment.Metrics, error)

	// Save persists the metrics record.
	Save(ctx context.Context, metrics *assignment.Metrics) error
}
