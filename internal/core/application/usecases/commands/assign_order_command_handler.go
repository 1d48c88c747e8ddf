package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/keyedmutex"
)

// AssignOrderCommandHandler executes the assignment workflow: eligibility
// checks, fee and earning calculation, and the order mutation, all inside
// one transaction.
//
// Two locks guard the workflow. The per-courier striped lock serializes the
// capacity check with other assignments and availability toggles for the
// same courier, so two racing requests cannot both observe spare capacity
// and overload the courier. The order row itself is read FOR UPDATE, so two
// couriers racing for the same order serialize on the row and the loser
// sees the committed Assigned status rather than a stale Placed snapshot.
// When the assignment fills the courier's last slot, the courier is removed
// from the availability rotation after the transaction commits.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.AvailabilityRegistry
	locks      *keyedmutex.KeyedMutex
	dispatcher services.OrderDispatcher
	now        func() time.Time
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	registry ports.AvailabilityRegistry,
	locks *keyedmutex.KeyedMutex,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		locks:      locks,
		dispatcher: services.NewOrderDispatcher(),
		now:        time.Now,
	}
}

// Handle processes the assignment request.
//
// Failure modes:
//   - order.ErrOrderNotAvailable: the order is gone or already taken
//     (soft, the caller may try another order)
//   - services.ErrZoneMismatch, services.ErrCourierNotVerified: the courier
//     is ineligible (soft, the caller may try another courier)
//   - services.ErrCourierAtCapacity: the courier holds the maximum number
//     of active orders (hard, reported to the courier directly)
//   - errs.ErrObjectNotFound: the courier does not exist
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	key := command.CourierID().String()
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.GetForUpdate(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return order.ErrOrderNotAvailable
	}
	if err != nil {
		return err
	}

	c, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	active, err := orderRepo.CountActiveByCourier(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if err = h.dispatcher.Dispatch(ord, c, active, h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if active+1 >= services.MaxActiveOrders {
		h.registry.MarkUnavailable(c.ID())
	}

	return nil
}
