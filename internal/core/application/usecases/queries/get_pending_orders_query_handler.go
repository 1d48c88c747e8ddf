package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler lists a zone's placed orders awaiting
// assignment, ordered by placement time so the oldest waiting customer is
// served first.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for pending order queries.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query for the zone's pending orders.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			zone,
			total_amount,
			payment_method,
			placed_at
		FROM orders
		WHERE status = 'PLACED' AND zone = ?
		ORDER BY placed_at
	`, query.Zone().Code()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetPendingOrdersQueryResponse
		var id uuid.UUID
		var zoneCode string

		err = rows.Scan(
			&id,
			&zoneCode,
			&response.TotalAmount,
			&response.PaymentMethod,
			&response.PlacedAt,
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
