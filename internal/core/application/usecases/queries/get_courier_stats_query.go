// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierStatsQueryIsNotConstructed = errors.New(
	"GetCourierStatsQuery must be created via NewGetCourierStatsQuery constructor",
)

// GetCourierStatsQuery retrieves delivery and earning statistics for one
// courier.
//
// Example:
//
//	query, err := NewGetCourierStatsQuery(courierID)
//	if err != nil {
//	    return err
//	}
//	stats, err := handler.Handle(ctx, query)
type GetCourierStatsQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierStatsQuery creates a query for the courier's statistics.
func NewGetCourierStatsQuery(courierID kernel.UUID) (GetCourierStatsQuery, error) {
	q := GetCourierStatsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := courierID.Validate(); err != nil {
		return GetCourierStatsQuery{}, err
	}
	q.courierID = courierID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierStatsQueryIsNotConstructed)
}

// CourierID returns the courier whose statistics are requested.
func (q GetCourierStatsQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierStatsQueryResponse is the courier statistics read model.
// Every sum defaults to zero when no matching orders exist.
type GetCourierStatsQueryResponse struct {
	CompletedDeliveries int
	ActiveOrders        int
	TotalEarnings       float64
	TodayEarnings       float64
	WeekEarnings        float64
	AverageEarning      float64
}
