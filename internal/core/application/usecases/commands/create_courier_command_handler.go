package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler persists newly registered couriers.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	now        func() time.Time
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle registers the courier in unverified status.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, command CreateCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	c, err := courier.NewCourier(command.CourierID(), command.FullName(), command.Zone(), h.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
