package commands

import (
	"context"
)

// CollectPaymentCommandHandler marks an order's payment as collected.
// The operation is idempotent: collecting an already collected payment
// leaves the order unchanged.
type CollectPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCollectPaymentCommandHandler creates a handler for payment collection.
func NewCollectPaymentCommandHandler(uowFactory OrderUoWFactory) CollectPaymentCommandHandler {
	return CollectPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle records the collected payment on the order.
// Returns errs.ErrObjectNotFound when the order does not exist.
func (h CollectPaymentCommandHandler) Handle(ctx context.Context, command CollectPaymentCommand) error {
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

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	ord.CollectPayment()

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
