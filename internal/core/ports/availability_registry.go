package ports

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// AvailableCourier is a registry entry for one courier currently on shift.
type AvailableCourier struct {
	CourierID kernel.UUID
	Zone      kernel.Zone
	LastSeen  time.Time
}

// AvailabilityRegistry tracks which couriers are currently accepting orders,
// grouped by delivery zone. Entries are kept fresh by heartbeats and expire
// when a courier goes silent; expiry is observed lazily on read.
//
// The registry is an in-memory projection. Losing it on restart is
// acceptable: couriers re-announce availability and the roster rebuilds.
type AvailabilityRegistry interface {
	// MarkAvailable registers the courier as accepting orders in the given
	// zone. If the courier was registered in another zone, the old entry is
	// replaced. Re-registering in the same zone refreshes the heartbeat but
	// keeps the courier's position in the zone's rotation.
	MarkAvailable(courierID kernel.UUID, zone kernel.Zone)

	// MarkUnavailable removes the courier from the registry. Unknown
	// couriers are ignored.
	MarkUnavailable(courierID kernel.UUID)

	// Heartbeat refreshes the courier's freshness window without changing
	// their zone or rotation position. Reports false when the courier is
	// not registered or already expired; the caller should then re-announce
	// availability.
	Heartbeat(courierID kernel.UUID) bool

	// ListAvailable returns the couriers registered in the zone whose
	// heartbeat is still fresh, in registration order. Expired entries
	// encountered during the scan are evicted.
	ListAvailable(zone kernel.Zone) []AvailableCourier

	// IsAvailable reports whether the courier is registered with a fresh
	// heartbeat.
	IsAvailable(courierID kernel.UUID) bool

	// Zones returns every zone that currently has at least one fresh
	// registration. The dispatch loop iterates these instead of scanning
	// all zones in the system.
	Zones() []kernel.Zone
}
