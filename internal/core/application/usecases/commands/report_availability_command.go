package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportAvailabilityCommandIsNotConstructed = errors.New(
	"ReportAvailabilityCommand must be created via NewReportAvailabilityCommand constructor",
)

// ReportAvailabilityCommand represents a courier toggling their shift state.
// Going available admits the courier to their zone's dispatch rotation;
// going unavailable removes them immediately.
type ReportAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewReportAvailabilityCommand creates a command to toggle a courier's availability.
func NewReportAvailabilityCommand(courierID kernel.UUID, available bool) (ReportAvailabilityCommand, error) {
	cmd := ReportAvailabilityCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return ReportAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrReportAvailabilityCommandIsNotConstructed)
}

// CourierID returns the courier toggling availability.
func (c ReportAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Available reports the requested shift state.
func (c ReportAvailabilityCommand) Available() bool {
	return c.available
}

func (c *ReportAvailabilityCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
