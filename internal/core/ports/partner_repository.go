package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for partner aggregates.
// Provides methods for storing, retrieving, and querying partner entities
// with their coverage areas, shift, load and accumulated metrics.
type PartnerRepository interface {
	// Add persists a new partner aggregate to storage.
	// The partner must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *partner.Partner) error

	// Update persists changes to an existing partner aggregate.
	// The partner must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *partner.Partner) error

	// Get retrieves a partner aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error)

	// GetAll retrieves every registered partner, in registration order.
	// Registration order makes least-loaded tie-breaking deterministic.
	GetAll(ctx context.Context) ([]*partner.Partner, error)

	// GetAllAvailable retrieves active partners with spare capacity below
	// maxLoad, in registration order. Used by the batch assignment sweep to
	// snapshot candidates once per run.
	GetAllAvailable(ctx context.Context, maxLoad int) ([]*partner.Partner, error)

	// Delete removes a partner from storage.
	Delete(ctx context.Context, id kernel.UUID) error

	// ConfirmTakeOrder persists a partner's load increment, guarded so the
	// write only lands if the stored load is still below maxLoad. Returns
	// ErrConcurrentModification when another transaction filled the last
	// slot first.
	ConfirmTakeOrder(ctx context.Context, aggregate *partner.Partner, maxLoad int) error

	// ConfirmReleaseOrder persists a partner's load decrement together with
	// the completed or cancelled counter bump. The stored load never drops
	// below zero.
	ConfirmReleaseOrder(ctx context.Context, aggregate *partner.Partner) error
}
