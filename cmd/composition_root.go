package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/inmemory/availabilityregistry"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/keyedmutex"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph. The availability registry and
// the per-courier lock set are process-wide singletons: every handler that
// touches courier capacity must share them, so they are created once here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *availabilityregistry.Registry
	locks      *keyedmutex.KeyedMutex
	logger     *slog.Logger
}

// NewCompositionRoot builds the shared application state.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   availabilityregistry.NewRegistry(),
		locks:      &keyedmutex.KeyedMutex{},
		logger:     logger,
	}
}

func (c *CompositionRoot) uowF() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWF() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWF() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWF())
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWF())
}

func (c *CompositionRoot) CreateVerifyCourierCommandHandler() commands.VerifyCourierCommandHandler {
	return commands.NewVerifyCourierCommandHandler(c.courierUoWF(), c.registry)
}

func (c *CompositionRoot) CreateReportAvailabilityCommandHandler() commands.ReportAvailabilityCommandHandler {
	return commands.NewReportAvailabilityCommandHandler(c.uowF(), c.registry, c.locks)
}

func (c *CompositionRoot) CreateHeartbeatCommandHandler() commands.HeartbeatCommandHandler {
	return commands.NewHeartbeatCommandHandler(c.registry)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	return commands.NewAssignOrderCommandHandler(c.uowF(), c.registry, c.locks)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.uowF(), c.registry, c.locks)
}

func (c *CompositionRoot) CreateCollectPaymentCommandHandler() commands.CollectPaymentCommandHandler {
	return commands.NewCollectPaymentCommandHandler(c.orderUoWF())
}

func (c *CompositionRoot) CreateBackfillEarningsCommandHandler() commands.BackfillEarningsCommandHandler {
	return commands.NewBackfillEarningsCommandHandler(c.orderUoWF())
}

func (c *CompositionRoot) CreateSyncCourierRosterCommandHandler() commands.SyncCourierRosterCommandHandler {
	uow := c.uowFactory.Create()
	return commands.NewSyncCourierRosterCommandHandler(
		uow.CourierRepository(),
		courierrepo.NewGormCourierRosterRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB, c.registry)
}

func (c *CompositionRoot) CreateGetCourierStatsQueryHandler() queries.GetCourierStatsQueryHandler {
	return queries.NewGetCourierStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierDashboardQueryHandler() queries.GetCourierDashboardQueryHandler {
	return queries.NewGetCourierDashboardQueryHandler(c.gormDB, c.registry)
}

// CreateServer assembles the HTTP server over the shared handler graph.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateVerifyCourierCommandHandler(),
		c.CreateReportAvailabilityCommandHandler(),
		c.CreateHeartbeatCommandHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCollectPaymentCommandHandler(),
		c.CreateGetPendingOrdersQueryHandler(),
		c.CreateGetAvailableCouriersQueryHandler(),
		c.CreateGetCourierStatsQueryHandler(),
		c.CreateGetCourierDashboardQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs over the shared handler graph.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.registry,
		c.CreateGetPendingOrdersQueryHandler(),
		c.CreateAssignOrderCommandHandler(),
		c.CreateSyncCourierRosterCommandHandler(),
		c.CreateBackfillEarningsCommandHandler(),
		c.logger,
	)
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
