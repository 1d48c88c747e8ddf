package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OrderDispatchJob matches pending orders with available couriers.
// Runs every second; each pass walks the zones that currently have couriers
// on shift and offers that zone's pending orders, oldest first, to couriers
// in rotation order.
type OrderDispatchJob struct {
	registry      ports.AvailabilityRegistry
	pendingOrders queries.GetPendingOrdersQueryHandler
	assignOrder   commands.AssignOrderCommandHandler
	cron          *cron.Cron
	logger        *slog.Logger
}

// NewOrderDispatchJob creates the dispatch loop job.
func NewOrderDispatchJob(
	registry ports.AvailabilityRegistry,
	pendingOrders queries.GetPendingOrdersQueryHandler,
	assignOrder commands.AssignOrderCommandHandler,
	logger *slog.Logger,
) *OrderDispatchJob {
	return &OrderDispatchJob{
		registry:      registry,
		pendingOrders: pendingOrders,
		assignOrder:   assignOrder,
		cron:          cron.New(cron.WithSeconds()),
		logger:        logger.With("component", "order_dispatch_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *OrderDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		for _, zone := range j.registry.Zones() {
			j.dispatchZone(ctx, zone)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *OrderDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order dispatch job stopped")
}

// dispatchZone offers the zone's pending orders to its available couriers.
// Losing an eligibility race is an expected outcome, never logged as an
// error; the next pass picks the order up again.
func (j *OrderDispatchJob) dispatchZone(ctx context.Context, zone kernel.Zone) {
	query, err := queries.NewGetPendingOrdersQuery(zone)
	if err != nil {
		j.logger.ErrorContext(ctx, "Building pending orders query failed", "zone", zone.Code(), "error", err)
		return
	}

	pending, err := j.pendingOrders.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Loading pending orders failed", "zone", zone.Code(), "error", err)
		return
	}

	for _, pendingOrder := range pending {
		available := j.registry.ListAvailable(zone)
		if len(available) == 0 {
			return
		}

		for _, candidate := range available {
			cmd, cmdErr := commands.NewAssignOrderCommand(pendingOrder.ID, candidate.CourierID)
			if cmdErr != nil {
				j.logger.ErrorContext(ctx, "Building assign command failed", "error", cmdErr)
				return
			}

			assignErr := j.assignOrder.Handle(ctx, cmd)
			if assignErr == nil {
				j.logger.InfoContext(ctx, "Order assigned",
					"order", pendingOrder.ID.String(),
					"courier", candidate.CourierID.String(),
					"zone", zone.Code(),
				)
				break
			}
			if errors.Is(assignErr, order.ErrOrderNotAvailable) {
				// Someone else took the order; move on to the next one.
				break
			}
			if services.IsCourierIneligible(assignErr) {
				continue
			}

			j.logger.ErrorContext(ctx, "Order assignment failed",
				"order", pendingOrder.ID.String(),
				"courier", candidate.CourierID.String(),
				"error", assignErr,
			)
			return
		}
	}
}
