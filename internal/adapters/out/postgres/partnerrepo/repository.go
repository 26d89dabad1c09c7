package partnerrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartnerRepository implements PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartnerRepository creates a new GORM partner repository.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new partner to the database.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing partner to the database. All mutable columns are
// written explicitly, including zero values like a drained current_load;
// created_at keeps its original value.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "email", "phone", "status", "current_load", "areas",
			"shift_start", "shift_end", "rating", "completed_orders", "cancelled_orders").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.Partner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every registered partner in registration order.
// Registration order makes least-loaded tie-breaking deterministic.
func (r *GormPartnerRepository) GetAll(ctx context.Context) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllAvailable retrieves active partners with spare capacity below maxLoad,
// in registration order. Used by the batch sweep to snapshot candidates.
//
// Example:
//
//	available, err := repo.GetAllAvailable(ctx, partner.DefaultMaxLoad)
//	if err != nil {
//		return fmt.Errorf("failed to get available partners: %w", err)
//	}
//	for _, p := range available {
//		fmt.Printf("Available partner: %s\n", p.Name())
//	}
func (r *GormPartnerRepository) GetAllAvailable(ctx context.Context, maxLoad int) ([]*partner.Partner, error) {
	var dtos []PartnerDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND current_load < ?", partner.Active.String(), maxLoad).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Delete removes a partner from storage.
func (r *GormPartnerRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&PartnerDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("partner", id.String())
	}

	return nil
}

// ConfirmTakeOrder persists the partner's load increment. The write is
// guarded on the stored load still being below maxLoad, so two attempts
// racing on the partner's last slot cannot both take it. A lost race
// surfaces as ports.ErrConcurrentModification.
func (r *GormPartnerRepository) ConfirmTakeOrder(ctx context.Context, aggregate *partner.Partner, maxLoad int) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ? AND current_load < ?", aggregate.ID().Bytes(), maxLoad).
		Update("current_load", gorm.Expr("current_load + 1"))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrConcurrentModification
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// ConfirmReleaseOrder persists the partner's load decrement together with the
// completed and cancelled counters from the aggregate. The stored load is
// floored at zero.
func (r *GormPartnerRepository) ConfirmReleaseOrder(ctx context.Context, aggregate *partner.Partner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	metrics := aggregate.PartnerMetrics()
	result := r.db.WithContext(ctx).
		Model(&PartnerDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"current_load":     gorm.Expr("GREATEST(current_load - 1, 0)"),
			"rating":           metrics.Rating,
			"completed_orders": metrics.CompletedOrders,
			"cancelled_orders": metrics.CancelledOrders,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// toDomainSlice converts DTO rows to domain aggregates preserving row order.
func toDomainSlice(dtos []PartnerDTO) ([]*partner.Partner, error) {
	partners := make([]*partner.Partner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}

	return partners, nil
}
