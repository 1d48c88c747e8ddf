package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/keyedmutex"
)

// UpdateOrderStatusCommandHandler moves an order through its lifecycle on
// behalf of the assigned courier. The state machine itself lives on the
// Order aggregate; this handler owns the transaction and the availability
// side effect.
//
// A terminal transition (DELIVERED or CANCELLED) frees one of the
// courier's active-order slots. The handler recounts the courier's
// remaining active orders inside the same transaction and, when the count
// drops below the capacity cap, re-admits the courier to their zone's
// rotation with a fresh heartbeat. The same per-courier lock used during
// assignment guards this sequence, so a courier can be neither
// over-capacity and advertised nor under-capacity and excluded.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.AvailabilityRegistry
	locks      *keyedmutex.KeyedMutex
	now        func() time.Time
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory UoWFactory,
	registry ports.AvailabilityRegistry,
	locks *keyedmutex.KeyedMutex,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		locks:      locks,
		now:        time.Now,
	}
}

// Handle processes the transition and returns the updated order.
//
// Failure modes:
//   - errs.ErrObjectNotFound: the order does not exist
//   - order.ErrNotAssignedCourier: the requester is not the assigned courier
//   - order.ErrCannotPickUp / ErrCannotStartDelivery / ErrCannotDeliver /
//     ErrCannotCancel: invalid transition for the current status
//   - order.ErrPaymentNotCollected: COD order delivered before payment
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	key := command.CourierID().String()
	h.locks.Lock(key)
	defer h.locks.Unlock(key)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.applyTransition(ord, command); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return nil, err
	}

	remaining := 0
	if ord.Status().IsTerminal() {
		remaining, err = orderRepo.CountActiveByCourier(ctx, command.CourierID())
		if err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if ord.Status().IsTerminal() {
		h.reconcileAvailability(command.CourierID(), ord.Zone(), remaining)
	}

	return ord, nil
}

// applyTransition invokes the aggregate transition matching the target status.
func (h UpdateOrderStatusCommandHandler) applyTransition(ord *order.Order, command UpdateOrderStatusCommand) error {
	switch command.NewStatus() {
	case order.PickedUp:
		return ord.PickUp(command.CourierID(), h.now())
	case order.OutForDelivery:
		return ord.StartDelivery(command.CourierID())
	case order.Delivered:
		return ord.Deliver(command.CourierID(), h.now())
	case order.Cancelled:
		return ord.Cancel(command.CourierID(), h.now())
	default:
		return fmt.Errorf("%w: %s", ErrStatusIsNotReachable, command.NewStatus())
	}
}

// reconcileAvailability re-admits the courier to the zone rotation when a
// freed slot brings them back under the capacity cap. Called after both
// DELIVERED and CANCELLED transitions.
func (h UpdateOrderStatusCommandHandler) reconcileAvailability(
	courierID kernel.UUID,
	zone kernel.Zone,
	remainingActive int,
) {
	if remainingActive < services.MaxActiveOrders {
		h.registry.MarkAvailable(courierID, zone)
	}
}
