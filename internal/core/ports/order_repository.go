// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned when a conditional update touches no
// rows because another transaction changed the aggregate first. Callers should
// reload the aggregate and retry or abort.
var ErrConcurrentModification = errors.New("aggregate was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its current status and assignment.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPending retrieves every order still waiting for a partner,
	// oldest first. Used by the batch assignment sweep.
	GetAllPending(ctx context.Context) ([]*order.Order, error)

	// ConfirmAssignment persists an order's transition into Assigned state,
	// guarded so the write only lands if the stored row is still pending.
	// Returns ErrConcurrentModification when another transaction already
	// moved the order out of the pending state.
	ConfirmAssignment(ctx context.Context, aggregate *order.Order) error
}
