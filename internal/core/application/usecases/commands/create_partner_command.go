package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreatePartnerCommandIsNotConstructed = errors.New(
		"CreatePartnerCommand must be created via NewCreatePartnerCommand constructor",
	)
	ErrPartnerNameIsRequired  = errors.New("partner name is required")
	ErrPartnerEmailIsRequired = errors.New("partner email is required")
	ErrPartnerPhoneIsRequired = errors.New("partner phone is required")
	ErrAreasAreRequired       = errors.New("at least one coverage area is required")
)

// CreatePartnerCommand represents a request to register a new delivery partner.
// New partners start active with zero load and zeroed metrics.
//
// Example:
//
//	shift, _ := partner.NewShift(start, end)
//	cmd, err := NewCreatePartnerCommand(
//	    kernel.NewUUID(), "Ola Svensson", "ola@example.com", "+46-70-1234567",
//	    []string{"Downtown", "Harbor"}, shift,
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid partner data: %w", err)
//	}
type CreatePartnerCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	name      string
	email     string
	phone     string
	areas     []string
	shift     partner.Shift

	guard guard.ConstructorGuard
}

// NewCreatePartnerCommand creates a command to register a new delivery partner.
// Validates that the identifier, contact fields, coverage areas and shift are
// present and well formed.
func NewCreatePartnerCommand(
	partnerID kernel.UUID,
	name string,
	email string,
	phone string,
	areas []string,
	shift partner.Shift,
) (CreatePartnerCommand, error) {
	cmd := CreatePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setName(name),
		cmd.setEmail(email),
		cmd.setPhone(phone),
		cmd.setAreas(areas),
		cmd.setShift(shift),
	); err != nil {
		return CreatePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePartnerCommand) Validate() error {
	return c.guard.Validate(ErrCreatePartnerCommandIsNotConstructed)
}

// PartnerID returns the unique identifier for the partner.
func (c CreatePartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Name returns the partner's display name.
func (c CreatePartnerCommand) Name() string {
	return c.name
}

// Email returns the partner's contact email.
func (c CreatePartnerCommand) Email() string {
	return c.email
}

// Phone returns the partner's contact phone.
func (c CreatePartnerCommand) Phone() string {
	return c.phone
}

// Areas returns the partner's coverage areas.
func (c CreatePartnerCommand) Areas() []string {
	return c.areas
}

// Shift returns the partner's working shift.
func (c CreatePartnerCommand) Shift() partner.Shift {
	return c.shift
}

func (c *CreatePartnerCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *CreatePartnerCommand) setName(name string) error {
	if name == "" {
		return ErrPartnerNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreatePartnerCommand) setEmail(email string) error {
	if email == "" {
		return ErrPartnerEmailIsRequired
	}

	c.email = email
	return nil
}

func (c *CreatePartnerCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrPartnerPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *CreatePartnerCommand) setAreas(areas []string) error {
	if len(areas) == 0 {
		return ErrAreasAreRequired
	}

	c.areas = areas
	return nil
}

func (c *CreatePartnerCommand) setShift(shift partner.Shift) error {
	if err := shift.Validate(); err != nil {
		return err
	}

	c.shift = shift
	return nil
}
