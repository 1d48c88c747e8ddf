package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCourierDashboardQueryHandler assembles the courier's home screen from
// the other read models plus the availability registry. It reuses the
// stats, assigned-orders and pending-orders handlers rather than
// duplicating their SQL.
type GetCourierDashboardQueryHandler struct {
	db            *gorm.DB
	registry      ports.AvailabilityRegistry
	stats         GetCourierStatsQueryHandler
	activeOrders  GetAssignedOrdersQueryHandler
	pendingOrders GetPendingOrdersQueryHandler
}

// NewGetCourierDashboardQueryHandler creates a handler for dashboard queries.
func NewGetCourierDashboardQueryHandler(
	db *gorm.DB,
	registry ports.AvailabilityRegistry,
) GetCourierDashboardQueryHandler {
	return GetCourierDashboardQueryHandler{
		db:            db,
		registry:      registry,
		stats:         NewGetCourierStatsQueryHandler(db),
		activeOrders:  NewGetAssignedOrdersQueryHandler(db),
		pendingOrders: NewGetPendingOrdersQueryHandler(db),
	}
}

// Handle builds the dashboard for the courier.
// Returns errs.ErrObjectNotFound when the courier does not exist.
func (h GetCourierDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetCourierDashboardQuery,
) (GetCourierDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}

	var response GetCourierDashboardQueryResponse
	var id uuid.UUID
	var zoneCode, verificationStatus string

	row := h.db.WithContext(ctx).Raw(`
		SELECT id, full_name, zone, verification_status
		FROM couriers
		WHERE id = ?
	`, query.CourierID().Bytes()).Row()

	err := row.Scan(&id, &response.FullName, &zoneCode, &verificationStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCourierDashboardQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"courierID", query.CourierID(), err,
		)
	}
	if err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}

	courierID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}
	response.ID = courierID
	response.VerificationStatus = verificationStatus

	zone, err := kernel.NewZone(zoneCode)
	if err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}
	response.Zone = zone

	response.Available = h.registry.IsAvailable(courierID)

	statsQuery, err := NewGetCourierStatsQuery(courierID)
	if err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}
	if response.Stats, err = h.stats.Handle(ctx, statsQuery); err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}

	activeQuery, err := NewGetAssignedOrdersQuery(courierID)
	if err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}
	if response.ActiveOrders, err = h.activeOrders.Handle(ctx, activeQuery); err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}

	pendingQuery, err := NewGetPendingOrdersQuery(zone)
	if err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}
	if response.PendingInZone, err = h.pendingOrders.Handle(ctx, pendingQuery); err != nil {
		return GetCourierDashboardQueryResponse{}, err
	}

	return response, nil
}
