package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// DeletePartnerCommandHandler handles partner removal.
// Deletion is unconditional: orders already assigned to the partner keep
// their ledger history, only the partner record itself is removed.
type DeletePartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewDeletePartnerCommandHandler creates a handler for partner removal.
func NewDeletePartnerCommandHandler(uowFactory PartnerUoWFactory) DeletePartnerCommandHandler {
	return DeletePartnerCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes a partner removal.
// Returns ErrPartnerNotFound when the partner does not exist.
func (h DeletePartnerCommandHandler) Handle(ctx context.Context, cmd DeletePartnerCommand) error {
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

	err := uow.PartnerRepository().Delete(ctx, cmd.PartnerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrPartnerNotFound
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
