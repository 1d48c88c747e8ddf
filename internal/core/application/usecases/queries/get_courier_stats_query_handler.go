package queries

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// GetCourierStatsQueryHandler aggregates a courier's delivery counts and
// earnings straight from the order store. Uses direct SQL for optimal read
// performance in the CQRS pattern.
//
// The "today" window starts at local midnight; the "week" window covers the
// last seven days from now. Earnings sums coalesce to zero so couriers
// without deliveries see zeros, never nulls.
type GetCourierStatsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetCourierStatsQueryHandler creates a handler for courier statistics queries.
func NewGetCourierStatsQueryHandler(db *gorm.DB) GetCourierStatsQueryHandler {
	return GetCourierStatsQueryHandler{db: db, now: time.Now}
}

// Handle executes the statistics aggregation for the courier.
func (h GetCourierStatsQueryHandler) Handle(
	ctx context.Context,
	query GetCourierStatsQuery,
) (GetCourierStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	now := h.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -7)

	var response GetCourierStatsQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = 'DELIVERED'),
			COUNT(*) FILTER (WHERE status IN ('ASSIGNED', 'PICKED_UP', 'OUT_FOR_DELIVERY')),
			COALESCE(SUM(courier_earning) FILTER (WHERE status = 'DELIVERED'), 0),
			COALESCE(SUM(courier_earning) FILTER (WHERE status = 'DELIVERED' AND delivered_at >= ?), 0),
			COALESCE(SUM(courier_earning) FILTER (WHERE status = 'DELIVERED' AND delivered_at >= ?), 0)
		FROM orders
		WHERE courier_id = ?
	`, dayStart, weekStart, query.CourierID().Bytes()).Row()

	err := row.Scan(
		&response.CompletedDeliveries,
		&response.ActiveOrders,
		&response.TotalEarnings,
		&response.TodayEarnings,
		&response.WeekEarnings,
	)
	if err != nil {
		return GetCourierStatsQueryResponse{}, err
	}

	if response.CompletedDeliveries > 0 {
		response.AverageEarning = response.TotalEarnings / float64(response.CompletedDeliveries)
	}

	return response, nil
}
