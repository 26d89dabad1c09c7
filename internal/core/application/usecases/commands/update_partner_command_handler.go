package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// ErrPartnerNotFound is returned when a command addresses a partner that is
// not registered.
var ErrPartnerNotFound = errors.New("partner not found")

// UpdatePartnerCommandHandler handles partner profile updates.
// Loads the aggregate, applies the new profile through domain setters and
// persists the result in one transaction.
type UpdatePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewUpdatePartnerCommandHandler creates a handler for partner profile updates.
func NewUpdatePartnerCommandHandler(uowFactory PartnerUoWFactory) UpdatePartnerCommandHandler {
	return UpdatePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes a partner profile update.
// Returns ErrPartnerNotFound when the partner does not exist.
func (h UpdatePartnerCommandHandler) Handle(ctx context.Context, cmd UpdatePartnerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	partnerRepo := uow.PartnerRepository()

	aggregate, err := partnerRepo.Get(ctx, cmd.PartnerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPartnerNotFound
	}
	if err != nil {
		return err
	}

	if err = errors.Join(
		aggregate.SetContact(cmd.Name(), cmd.Email(), cmd.Phone()),
		aggregate.SetStatus(cmd.Status()),
		aggregate.SetAreas(cmd.Areas()),
		aggregate.SetShift(cmd.Shift()),
	); err != nil {
		return err
	}

	if err = partnerRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
