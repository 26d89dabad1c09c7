// Package metricsrepo provides persistence for the singleton assignment
// metrics record. The scalar fields live in a single-row table; the failure
// reason histogram lives in a companion table keyed by reason.
package metricsrepo

// singletonID is the fixed primary key of the one metrics row.
const singletonID = 1

// MetricsDTO represents the single-row database structure for the aggregated
// assignment metrics.
type MetricsDTO struct {
	ID            int16   `gorm:"primaryKey"`
	TotalAssigned int64   `gorm:"type:bigint;not null"`
	SuccessRate   float64 `gorm:"type:numeric(5,2);not null"`
	AverageTime   float64 `gorm:"type:numeric(8,2);not null"`
}

// TableName specifies the database table name for the metrics record.
// Overrides GORM's default naming convention to use "assignment_metrics".
func (MetricsDTO) TableName() string {
	return "assignment_metrics"
}

// FailureReasonDTO represents one bucket of the failure reason histogram.
type FailureReasonDTO struct {
	Reason string `gorm:"type:varchar(255);primaryKey"`
	Count  int64  `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for the failure reason histogram.
// Overrides GORM's default naming convention to use "assignment_failure_reasons".
func (FailureReasonDTO) TableName() string {
	return "assignment_failure_reasons"
}
