package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand represents a request to register a new courier.
// Registered couriers start unverified and cannot take orders until the
// document check passes.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	fullName  string
	zone      kernel.Zone

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier.
// Generates a unique ID for the courier; read it back via CourierID.
func NewCreateCourierCommand(fullName string, zone kernel.Zone) (CreateCourierCommand, error) {
	cmd := CreateCourierCommand{
		courierID: kernel.NewUUID(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setFullName(fullName),
		cmd.setZone(zone),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the generated courier ID.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// FullName returns the courier's display name.
func (c CreateCourierCommand) FullName() string {
	return c.fullName
}

// Zone returns the courier's home zone.
func (c CreateCourierCommand) Zone() kernel.Zone {
	return c.zone
}

func (c *CreateCourierCommand) setFullName(fullName string) error {
	if fullName == "" {
		return errs.NewValueIsRequiredError("fullName")
	}

	c.fullName = fullName
	return nil
}

func (c *CreateCourierCommand) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	c.zone = zone
	return nil
}
