package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableCouriersQueryHandler lists the couriers currently on shift in
// a zone. Membership and heartbeats come from the in-memory registry, which
// evicts stale entries as a side effect of the read; courier names are
// joined in from the store for display.
type GetAvailableCouriersQueryHandler struct {
	db       *gorm.DB
	registry ports.AvailabilityRegistry
}

// NewGetAvailableCouriersQueryHandler creates a handler for availability queries.
func NewGetAvailableCouriersQueryHandler(
	db *gorm.DB,
	registry ports.AvailabilityRegistry,
) GetAvailableCouriersQueryHandler {
	return GetAvailableCouriersQueryHandler{db: db, registry: registry}
}

// Handle returns the zone's available couriers in rotation order.
func (h GetAvailableCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableCouriersQuery,
) ([]GetAvailableCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	available := h.registry.ListAvailable(query.Zone())
	if len(available) == 0 {
		return []GetAvailableCouriersQueryResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(available))
	for _, entry := range available {
		ids = append(ids, entry.CourierID.Bytes())
	}

	names := make(map[kernel.UUID]string, len(ids))

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, full_name FROM couriers WHERE id IN ?
	`, ids).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var fullName string

		if err = rows.Scan(&id, &fullName); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		names[courierID] = fullName
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	couriers := make([]GetAvailableCouriersQueryResponse, 0, len(available))
	for _, entry := range available {
		couriers = append(couriers, GetAvailableCouriersQueryResponse{
			ID:       entry.CourierID,
			FullName: names[entry.CourierID],
			LastSeen: entry.LastSeen,
		})
	}

	return couriers, nil
}
