package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
)

// deliveredAtFallbackDelay approximates a delivery timestamp for legacy
// orders that were delivered before timestamps were recorded.
const deliveredAtFallbackDelay = time.Hour

// BackfillEarningsCommandHandler recomputes the delivery fee and courier
// earning for delivered orders missing an earning. Orders missing a
// deliveredAt timestamp get one approximated from their placement time.
//
// The backfill is idempotent: orders repaired by a previous run no longer
// match the missing-earning filter, so running it twice applies nothing
// twice.
type BackfillEarningsCommandHandler struct {
	uowFactory OrderUoWFactory
	tariff     services.Tariff
}

// NewBackfillEarningsCommandHandler creates a handler for the earnings backfill.
func NewBackfillEarningsCommandHandler(uowFactory OrderUoWFactory) BackfillEarningsCommandHandler {
	return BackfillEarningsCommandHandler{
		uowFactory: uowFactory,
		tariff:     services.NewTariff(),
	}
}

// Handle repairs all delivered orders missing an earning and reports how
// many were updated.
func (h BackfillEarningsCommandHandler) Handle(ctx context.Context, command BackfillEarningsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orders, err := orderRepo.GetDeliveredWithoutEarnings(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, ord := range orders {
		fee, earning := h.tariff.Quote(ord.TotalAmount())
		fallback := ord.PlacedAt().Add(deliveredAtFallbackDelay)

		if !ord.BackfillEarnings(fee, earning, fallback) {
			continue
		}

		if err = orderRepo.Update(ctx, ord); err != nil {
			return 0, err
		}
		updated++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return updated, nil
}
