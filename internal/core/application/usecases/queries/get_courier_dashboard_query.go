package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCourierDashboardQueryIsNotConstructed = errors.New(
	"GetCourierDashboardQuery must be created via NewGetCourierDashboardQuery constructor",
)

// GetCourierDashboardQuery retrieves everything a courier's home screen
// shows: profile, statistics, active orders, the zone's pending orders and
// the current availability flag.
type GetCourierDashboardQuery struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCourierDashboardQuery creates a query for the courier's dashboard.
func NewGetCourierDashboardQuery(courierID kernel.UUID) (GetCourierDashboardQuery, error) {
	q := GetCourierDashboardQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := courierID.Validate(); err != nil {
		return GetCourierDashboardQuery{}, err
	}
	q.courierID = courierID

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierDashboardQueryIsNotConstructed)
}

// CourierID returns the courier whose dashboard is requested.
func (q GetCourierDashboardQuery) CourierID() kernel.UUID {
	return q.courierID
}

// GetCourierDashboardQueryResponse is the composite dashboard read model.
type GetCourierDashboardQueryResponse struct {
	ID                 kernel.UUID
	FullName           string
	Zone               kernel.Zone
	VerificationStatus string
	Available          bool
	Stats              GetCourierStatsQueryResponse
	ActiveOrders       []GetAssignedOrdersQueryResponse
	PendingInZone      []GetPendingOrdersQueryResponse
}
