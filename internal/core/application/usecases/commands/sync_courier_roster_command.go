package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrSyncCourierRosterCommandIsNotConstructed = errors.New(
	"SyncCourierRosterCommand must be created via NewSyncCourierRosterCommand constructor",
)

// SyncCourierRosterCommand triggers a refresh of the courier_roster read
// table from the verified couriers in the primary store.
type SyncCourierRosterCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncCourierRosterCommand creates a command to refresh the courier roster.
func NewSyncCourierRosterCommand() SyncCourierRosterCommand {
	return SyncCourierRosterCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *SyncCourierRosterCommand) Validate() error {
	return c.guard.Validate(ErrSyncCourierRosterCommandIsNotConstructed)
}
