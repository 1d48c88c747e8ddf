package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAssignedOrdersQueryIsNotConstructed = errors.New(
	"GetAssignedOrdersQuery must be created via NewGetAssignedOrdersQuery constructor",
)

// GetAssignedOrdersQuery retrieves a courier's active orders: everything
// assigned, picked up or out for delivery.
type GetAssignedOrdersQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAssignedOrdersQuery creates a query for the courier's active orders.
func NewGetAssignedOrdersQuery(courierID kernel.UUID) (GetAssignedOrdersQuery, error) {
	q := GetAssignedOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := courierID.Validate(); err != nil {
		return GetAssignedOrdersQuery{}, err
	}
	q.courierID = courierID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAssignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAssignedOrdersQueryIsNotConstructed)
}

// CourierID returns the courier whose active orders are requested.
func (q GetAssignedOrdersQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetAssignedOrdersQueryResponse is the active order read model.
type GetAssignedOrdersQueryResponse struct {
	ID             kernel.UUID
	Zone           kernel.Zone
	Status         string
	TotalAmount    float64
	DeliveryFee    float64
	CourierEarning float64
	PlacedAt       time.Time
	AssignedAt     time.Time
}
