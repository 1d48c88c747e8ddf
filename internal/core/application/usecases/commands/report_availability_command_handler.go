package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/keyedmutex"
)

// ReportAvailabilityCommandHandler applies a courier's shift toggle.
//
// Going available requires a verified courier with spare capacity, so the
// registry never advertises a courier the dispatcher would reject anyway.
// Going unavailable always succeeds for a known courier. Either way the
// courier record's updatedAt is bumped so the store reflects the courier's
// latest activity.
//
// The per-courier lock keeps the capacity check coherent with concurrent
// assignments on the same courier.
type ReportAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	registry   ports.AvailabilityRegistry
	locks      *keyedmutex.KeyedMutex
	now        func() time.Time
}

// NewReportAvailabilityCommandHandler creates a handler for availability toggles.
func NewReportAvailabilityCommandHandler(
	uowFactory UoWFactory,
	registry ports.AvailabilityRegistry,
	locks *keyedmutex.KeyedMutex,
) ReportAvailabilityCommandHandler {
	return ReportAvailabilityCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		locks:      locks,
		now:        time.Now,
	}
}

// Handle processes the availability toggle.
//
// Returns errs.ErrObjectNotFound for an unknown courier. Admission also
// fails with services.ErrCourierNotVerified or services.ErrCourierAtCapacity
// when the courier is not eligible for dispatch.
func (h ReportAvailabilityCommandHandler) Handle(ctx context.Context, command ReportAvailabilityCommand) error {
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

	courierRepo := uow.CourierRepository()

	c, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if command.Available() {
		if !c.IsVerified() {
			return services.ErrCourierNotVerified
		}

		active, err := uow.OrderRepository().CountActiveByCourier(ctx, command.CourierID())
		if err != nil {
			return err
		}
		if active >= services.MaxActiveOrders {
			return services.ErrCourierAtCapacity
		}
	}

	c.Touch(h.now())
	if err = courierRepo.Update(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if command.Available() {
		h.registry.MarkAvailable(c.ID(), c.Zone())
	} else {
		h.registry.MarkUnavailable(c.ID())
	}

	return nil
}
