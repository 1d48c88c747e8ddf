package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrVerifyCourierCommandIsNotConstructed = errors.New(
	"VerifyCourierCommand must be created via NewVerifyCourierCommand constructor",
)

// VerifyCourierCommand represents the outcome of a courier's document check.
// Approval admits the courier to dispatch eligibility; rejection bars them
// and drops any current availability.
type VerifyCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	approved  bool

	guard guard.ConstructorGuard
}

// NewVerifyCourierCommand creates a command to record a verification outcome.
func NewVerifyCourierCommand(courierID kernel.UUID, approved bool) (VerifyCourierCommand, error) {
	cmd := VerifyCourierCommand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := courierID.Validate(); err != nil {
		return VerifyCourierCommand{}, err
	}
	cmd.courierID = courierID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyCourierCommand) Validate() error {
	return c.guard.Validate(ErrVerifyCourierCommandIsNotConstructed)
}

// CourierID returns the courier whose documents were checked.
func (c VerifyCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Approved reports whether the document check passed.
func (c VerifyCourierCommand) Approved() bool {
	return c.approved
}
