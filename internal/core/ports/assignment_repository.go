package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/assignment"
)

// AssignmentRepository defines the persistence contract for the assignment
// ledger. The ledger is append only: entries are added and read, never
// updated or removed.
type AssignmentRepository interface {
	// Add appends a new ledger entry.
	Add(ctx context.Context, entry *assignment.Entry) error

	// CountByStatus returns the total number of ledger entries and how many
	// of them are successful. Used to recompute the metrics success rate
	// from the authoritative ledger.
	CountByStatus(ctx context.Context) (total int64, success int64, err error)

	// List retrieves ledger entries recorded in the half-open interval
	// [from, to), newest first. A zero time bound is unbounded on that side.
	List(ctx context.Context, from, to time.Time) ([]*assignment.Entry, error)
}
