package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// VerifyCourierCommandHandler records verification outcomes. A rejected
// courier is removed from the availability rotation immediately so the
// dispatch loop never offers them an order.
type VerifyCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	registry   ports.AvailabilityRegistry
	now        func() time.Time
}

// NewVerifyCourierCommandHandler creates a handler for verification outcomes.
func NewVerifyCourierCommandHandler(
	uowFactory CourierUoWFactory,
	registry ports.AvailabilityRegistry,
) VerifyCourierCommandHandler {
	return VerifyCourierCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		now:        time.Now,
	}
}

// Handle applies the verification outcome to the courier.
// Returns errs.ErrObjectNotFound when the courier does not exist.
func (h VerifyCourierCommandHandler) Handle(ctx context.Context, command VerifyCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	c, err := uow.CourierRepository().Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if command.Approved() {
		c.Verify(h.now())
	} else {
		c.Reject(h.now())
	}

	if err = uow.CourierRepository().Update(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !command.Approved() {
		h.registry.MarkUnavailable(c.ID())
	}

	return nil
}
