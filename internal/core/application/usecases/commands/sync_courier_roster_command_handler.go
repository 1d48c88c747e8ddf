package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// SyncCourierRosterCommandHandler projects the verified couriers from the
// primary store into the courier_roster read table. The upsert is keyed by
// courier ID, so repeated runs over the same roster are idempotent.
type SyncCourierRosterCommandHandler struct {
	courierRepo ports.CourierRepository
	rosterRepo  ports.CourierRosterRepository
}

// NewSyncCourierRosterCommandHandler creates a handler for roster synchronization.
func NewSyncCourierRosterCommandHandler(
	courierRepo ports.CourierRepository,
	rosterRepo ports.CourierRosterRepository,
) SyncCourierRosterCommandHandler {
	return SyncCourierRosterCommandHandler{
		courierRepo: courierRepo,
		rosterRepo:  rosterRepo,
	}
}

// Handle refreshes the roster and reports how many couriers were synced.
func (h SyncCourierRosterCommandHandler) Handle(ctx context.Context, command SyncCourierRosterCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	couriers, err := h.courierRepo.GetAllVerified(ctx)
	if err != nil {
		return 0, err
	}
	if len(couriers) == 0 {
		return 0, nil
	}

	if err = h.rosterRepo.UpsertAll(ctx, couriers); err != nil {
		return 0, err
	}

	return len(couriers), nil
}
