// Package ports defines the driven-side interfaces of the dispatch core.
// These contracts sit between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	// The courier must be valid and not already exist in the repository.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if no courier exists with that ID.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllVerified retrieves every courier that passed the document
	// check, regardless of current availability.
	GetAllVerified(ctx context.Context) ([]*courier.Courier, error)
}

// CourierRosterRepository maintains the courier_roster read table, a
// denormalized projection of verified couriers consumed by reporting.
type CourierRosterRepository interface {
	// UpsertAll inserts the couriers or, for IDs already present,
	// overwrites their mutable fields. Running the same batch twice
	// leaves the table unchanged.
	UpsertAll(ctx context.Context, couriers []*courier.Courier) error
}
