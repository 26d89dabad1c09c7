package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePartnerCommandIsNotConstructed = errors.New(
	"UpdatePartnerCommand must be created via NewUpdatePartnerCommand constructor",
)

// UpdatePartnerCommand represents a request to update a registered partner's
// profile: contact details, availability status, coverage areas and shift.
// Current load and accumulated metrics are never updated through this command,
// they only change through assignment and status transition workflows.
type UpdatePartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	name      string
	email     string
	phone     string
	status    partner.Status
	areas     []string
	shift     partner.Shift

	guard guard.ConstructorGuard
}

// NewUpdatePartnerCommand creates a command to update a partner's profile.
func NewUpdatePartnerCommand(
	partnerID kernel.UUID,
	name string,
	email string,
	phone string,
	status partner.Status,
	areas []string,
	shift partner.Shift,
) (UpdatePartnerCommand, error) {
	cmd := UpdatePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPhone(phone),
		cmd.setStatus(status),
		cmd.setAreas(areas),
		cmd.setShift(shift),
	); err != nil {
		return UpdatePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartnerCommandIsNotConstructed)
}

// PartnerID returns the identifier of the partner to update.
func (c UpdatePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the new display name.
func (c UpdatePartnerCommand) Name() string {
	return c.name
}

// Email returns the new contact email.
func (c UpdatePartnerCommand) Email() string {
	return c.email
}

// Phone returns the new contact phone.
func (c UpdatePartnerCommand) Phone() string {
	return c.phone
}

// Status returns the new availability status.
func (c UpdatePartnerCommand) Status() partner.Status {
	return c.status
}

// Areas returns the new coverage areas.
func (c UpdatePartnerCommand) Areas() []string {
	return c.areas
}

// Shift returns the new working shift.
func (c UpdatePartnerCommand) Shift() partner.Shift {
	return c.shift
}

func (c *UpdatePartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *UpdatePartnerCommand) setName(name string) error {
	if name == "" {
		return ErrPartnerNameIsRequired
	}

	c.name = name
	return nil
}

func (c *UpdatePartnerCommand) setEmail(email string) error {
	if email == "" {
		return ErrPartnerEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *UpdatePartnerCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrPartnerPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *UpdatePartnerCommand) setStatus(status partner.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	c.status = status
	return nil
}

func (c *UpdatePartnerCommand) setAreas(areas []string) error {
	if len(areas) == 0 {
		return ErrAreasAreRequired
	}

	c.areas = areas
	return nil
}

func (c *UpdatePartnerCommand) setShift(shift partner.Shift) error {
	if err := shift.Validate(); err != nil {
		return err
	}

	c.shift = shift
	return nil
}
