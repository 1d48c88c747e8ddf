package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status, zone, and assignment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if no order exists with that ID.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate by its unique identifier
	// and locks the backing row until the enclosing transaction ends.
	// Assignment reads through this method so two couriers racing for the
	// same order serialize on the row: the second reader observes the
	// committed Assigned status instead of a stale Placed snapshot.
	// Returns errs.ErrObjectNotFound if no order exists with that ID.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllPlacedInZone retrieves every order in Placed status for the
	// given zone, oldest placedAt first. Used by the dispatch loop so
	// waiting customers are served in arrival order.
	GetAllPlacedInZone(ctx context.Context, zone kernel.Zone) ([]*order.Order, error)

	// GetActiveByCourier retrieves the courier's orders in Assigned,
	// PickedUp or OutForDelivery status.
	GetActiveByCourier(ctx context.Context, courierID kernel.UUID) ([]*order.Order, error)

	// CountActiveByCourier counts the courier's orders in Assigned,
	// PickedUp or OutForDelivery status. Used for the capacity check
	// during assignment.
	CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int, error)

	// GetDeliveredWithoutEarnings retrieves delivered orders whose
	// courier earning was never recorded. Used by the earnings backfill.
	GetDeliveredWithoutEarnings(ctx context.Context) ([]*order.Order, error)
}
