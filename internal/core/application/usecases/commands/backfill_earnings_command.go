package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrBackfillEarningsCommandIsNotConstructed = errors.New(
	"BackfillEarningsCommand must be created via NewBackfillEarningsCommand constructor",
)

// BackfillEarningsCommand triggers the repair of historical delivered
// orders that never had a courier earning recorded. This is a maintenance
// operation; running it against a healthy data set changes nothing.
type BackfillEarningsCommand struct {
	guard guard.ConstructorGuard
}

// NewBackfillEarningsCommand creates a command to backfill missing earnings.
func NewBackfillEarningsCommand() BackfillEarningsCommand {
	return BackfillEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *BackfillEarningsCommand) Validate() error {
	return c.guard.Validate(ErrBackfillEarningsCommandIsNotConstructed)
}
