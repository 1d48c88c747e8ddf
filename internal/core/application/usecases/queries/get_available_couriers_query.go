package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAvailableCouriersQueryIsNotConstructed = errors.New(
	"GetAvailableCouriersQuery must be created via NewGetAvailableCouriersQuery constructor",
)

// GetAvailableCouriersQuery retrieves the couriers currently accepting
// orders in a zone.
type GetAvailableCouriersQuery struct { //nolint:recvcheck //using for validation
	zone kernel.Zone

	guard guard.ConstructorGuard
}

// NewGetAvailableCouriersQuery creates a query for the zone's available couriers.
func NewGetAvailableCouriersQuery(zone kernel.Zone) (GetAvailableCouriersQuery, error) {
	q := GetAvailableCouriersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := zone.Validate(); err != nil {
		return GetAvailableCouriersQuery{}, err
	}
	q.zone = zone

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableCouriersQueryIsNotConstructed)
}

// Zone returns the queried delivery zone.
func (q GetAvailableCouriersQuery) Zone() kernel.Zone {
	return q.zone
}

// GetAvailableCouriersQueryResponse is the available courier read model.
// LastSeen is the courier's most recent heartbeat.
type GetAvailableCouriersQueryResponse struct {
	ID       kernel.UUID
	FullName string
	LastSeen time.Time
}
