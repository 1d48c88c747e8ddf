package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAssignedOrdersQueryHandler lists a courier's in-flight orders, the
// most recently assigned first.
type GetAssignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAssignedOrdersQueryHandler creates a handler for active order queries.
func NewGetAssignedOrdersQueryHandler(db *gorm.DB) GetAssignedOrdersQueryHandler {
	return GetAssignedOrdersQueryHandler{db: db}
}

// Handle executes the query for the courier's active orders.
func (h GetAssignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAssignedOrdersQuery,
) ([]GetAssignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAssignedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			zone,
			status,
			total_amount,
			COALESCE(delivery_fee, 0),
			COALESCE(courier_earning, 0),
			placed_at,
			assigned_at
		FROM orders
		WHERE courier_id = ? AND status IN ('ASSIGNED', 'PICKED_UP', 'OUT_FOR_DELIVERY')
		ORDER BY assigned_at DESC
	`, query.CourierID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAssignedOrdersQueryResponse
		var id uuid.UUID
		var zoneCode string

		err = rows.Scan(
			&id,
			&zoneCode,
			&response.Status,
			&response.TotalAmount,
			&response.DeliveryFee,
			&response.CourierEarning,
			&response.PlacedAt,
			&response.AssignedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		zone, zoneErr := kernel.NewZone(zoneCode)
		if zoneErr != nil {
			return nil, zoneErr
		}
		response.Zone = zone

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
