package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per dispatch command, so
// concurrent assignments and status transitions never share transactional
// state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary for a dispatch command. An
// assignment must perform its eligibility and capacity checks against the
// same snapshot it writes the order mutation to; a terminal status
// transition likewise recounts the courier's active orders in the
// transaction that records the transition. The unit of work brackets such
// a sequence in one database transaction and hands out repositories bound
// to it. Callers drive the lifecycle explicitly with Begin and then
// Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction, releasing any order row
	// locks taken through the bound repositories.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// CourierRepository returns a CourierRepository bound to the current
	// transaction started by Begin.
	CourierRepository() CourierRepository

	// OrderRepository returns an OrderRepository bound to the current
	// transaction started by Begin. Its GetForUpdate holds the order's
	// row lock until the transaction ends.
	OrderRepository() OrderRepository
}
