package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery retrieves the placed, not yet assigned orders of a
// zone, oldest first.
type GetPendingOrdersQuery struct { //nolint:recvcheck //using for validation
	zone kernel.Zone

	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query for the zone's pending orders.
func NewGetPendingOrdersQuery(zone kernel.Zone) (GetPendingOrdersQuery, error) {
	q := GetPendingOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := zone.Validate(); err != nil {
		return GetPendingOrdersQuery{}, err
	}
	q.zone = zone

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// Zone returns the queried delivery zone.
func (q GetPendingOrdersQuery) Zone() kernel.Zone {
	return q.zone
}

// GetPendingOrdersQueryResponse is the pending order read model.
type GetPendingOrdersQueryResponse struct {
	ID            kernel.UUID
	Zone          kernel.Zone
	TotalAmount   float64
	PaymentMethod string
	PlacedAt      time.Time
}
