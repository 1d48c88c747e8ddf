package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrHeartbeatCommandIsNotConstructed = errors.New(
	"HeartbeatCommand must be created via NewHeartbeatCommand constructor",
)

// HeartbeatCommand refreshes a courier's availability freshness window
// without changing zone membership.
type HeartbeatCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewHeartbeatCommand creates a heartbeat command for the given courier.
func NewHeartbeatCommand(courierID kernel.UUID) (HeartbeatCommand, error) {
	cmd := HeartbeatCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := courierID.Validate(); err != nil {
		return HeartbeatCommand{}, err
	}
	cmd.courierID = courierID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HeartbeatCommand) Validate() error {
	return c.guard.Validate(ErrHeartbeatCommandIsNotConstructed)
}

// CourierID returns the courier sending the heartbeat.
func (c HeartbeatCommand) CourierID() kernel.UUID {
	return c.courierID
}
