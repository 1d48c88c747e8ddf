package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// HeartbeatCommandHandler applies courier heartbeats to the availability
// registry. Heartbeats are fire-and-forget: they touch no persistent state
// and an expired or unknown courier is reported back, not treated as an
// error, so the device can re-announce availability.
type HeartbeatCommandHandler struct {
	registry ports.AvailabilityRegistry
}

// NewHeartbeatCommandHandler creates a handler for courier heartbeats.
func NewHeartbeatCommandHandler(registry ports.AvailabilityRegistry) HeartbeatCommandHandler {
	return HeartbeatCommandHandler{registry: registry}
}

// Handle refreshes the courier's freshness window. The returned bool is
// false when the courier is not currently registered as available.
func (h HeartbeatCommandHandler) Handle(_ context.Context, command HeartbeatCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	return h.registry.Heartbeat(command.CourierID()), nil
}
