// Package http exposes the dispatch operations over a REST API built on
// echo. Request bodies are validated with go-playground/validator before
// commands are constructed; domain failures map onto HTTP statuses in
// statusFromError.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator interface.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the validator echo uses for request bodies.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *RequestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrder       commands.CreateOrderCommandHandler
	createCourier     commands.CreateCourierCommandHandler
	verifyCourier     commands.VerifyCourierCommandHandler
	reportAvail       commands.ReportAvailabilityCommandHandler
	heartbeat         commands.HeartbeatCommandHandler
	assignOrder       commands.AssignOrderCommandHandler
	updateOrderStatus commands.UpdateOrderStatusCommandHandler
	collectPayment    commands.CollectPaymentCommandHandler

	pendingOrders     queries.GetPendingOrdersQueryHandler
	availableCouriers queries.GetAvailableCouriersQueryHandler
	courierStats      queries.GetCourierStatsQueryHandler
	courierDashboard  queries.GetCourierDashboardQueryHandler
}

// NewServer creates the HTTP server binding all command and query handlers.
func NewServer(
	createOrder commands.CreateOrderCommandHandler,
	createCourier commands.CreateCourierCommandHandler,
	verifyCourier commands.VerifyCourierCommandHandler,
	reportAvail commands.ReportAvailabilityCommandHandler,
	heartbeat commands.HeartbeatCommandHandler,
	assignOrder commands.AssignOrderCommandHandler,
	updateOrderStatus commands.UpdateOrderStatusCommandHandler,
	collectPayment commands.CollectPaymentCommandHandler,
	pendingOrders queries.GetPendingOrdersQueryHandler,
	availableCouriers queries.GetAvailableCouriersQueryHandler,
	courierStats queries.GetCourierStatsQueryHandler,
	courierDashboard queries.GetCourierDashboardQueryHandler,
) *Server {
	return &Server{
		createOrder:       createOrder,
		createCourier:     createCourier,
		verifyCourier:     verifyCourier,
		reportAvail:       reportAvail,
		heartbeat:         heartbeat,
		assignOrder:       assignOrder,
		updateOrderStatus: updateOrderStatus,
		collectPayment:    collectPayment,
		pendingOrders:     pendingOrders,
		availableCouriers: availableCouriers,
		courierStats:      courierStats,
		courierDashboard:  courierDashboard,
	}
}

// RegisterRoutes binds every operation under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	v1 := e.Group("/api/v1")

	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/pending", s.GetPendingOrders)
	v1.POST("/orders/:orderID/assign", s.AssignOrder)
	v1.POST("/orders/:orderID/status", s.UpdateOrderStatus)
	v1.POST("/orders/:orderID/payment", s.CollectPayment)

	v1.POST("/couriers", s.CreateCourier)
	v1.GET("/couriers/available", s.GetAvailableCouriers)
	v1.POST("/couriers/:courierID/verification", s.VerifyCourier)
	v1.PUT("/couriers/:courierID/availability", s.SetAvailability)
	v1.POST("/couriers/:courierID/heartbeat", s.Heartbeat)
	v1.GET("/couriers/:courierID/stats", s.GetCourierStats)
	v1.GET("/couriers/:courierID/dashboard", s.GetCourierDashboard)
}

// statusFromError maps domain failures onto HTTP statuses. Eligibility and
// transition conflicts are 409s so callers can tell a retryable race from a
// malformed request.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrOrderNotAvailable),
		errors.Is(err, order.ErrNotAssignedCourier),
		errors.Is(err, order.ErrCannotPickUp),
		errors.Is(err, order.ErrCannotStartDelivery),
		errors.Is(err, order.ErrCannotDeliver),
		errors.Is(err, order.ErrCannotCancel),
		errors.Is(err, order.ErrPaymentNotCollected),
		errors.Is(err, services.ErrZoneMismatch),
		errors.Is(err, services.ErrCourierNotVerified),
		errors.Is(err, services.ErrCourierAtCapacity):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrStatusIsNotReachable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(ctx echo.Context, err error) error {
	code := statusFromError(err)
	return ctx.JSON(code, errorResponse{Code: code, Message: err.Error()})
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	zone, err := kernel.NewZone(req.Zone)
	if err != nil {
		return errorJSON(ctx, err)
	}
	method, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(zone, req.TotalAmount, method)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.createOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: cmd.OrderID().String()})
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req createCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	zone, err := kernel.NewZone(req.Zone)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCreateCourierCommand(req.FullName, zone)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.createCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createdResponse{ID: cmd.CourierID().String()})
}

// VerifyCourier handles POST /api/v1/couriers/:courierID/verification.
func (s *Server) VerifyCourier(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req verifyCourierRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewVerifyCourierCommand(courierID, *req.Approved)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.verifyCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetAvailability handles PUT /api/v1/couriers/:courierID/availability.
func (s *Server) SetAvailability(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req setAvailabilityRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewReportAvailabilityCommand(courierID, *req.Available)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.reportAvail.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Heartbeat handles POST /api/v1/couriers/:courierID/heartbeat.
func (s *Server) Heartbeat(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewHeartbeatCommand(courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	refreshed, err := s.heartbeat.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, heartbeatResponse{Refreshed: refreshed})
}

// AssignOrder handles POST /api/v1/orders/:orderID/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req assignOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.assignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles POST /api/v1/orders/:orderID/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	var req updateOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err = ctx.Validate(&req); err != nil {
		return err
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return errorJSON(ctx, err)
	}
	newStatus, err := order.StatusFromString(req.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, courierID, newStatus)
	if err != nil {
		return errorJSON(ctx, err)
	}

	updated, err := s.updateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderStatusResponse{
		ID:     updated.ID().String(),
		Status: updated.Status().String(),
	})
}

// CollectPayment handles POST /api/v1/orders/:orderID/payment.
func (s *Server) CollectPayment(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	cmd, err := commands.NewCollectPaymentCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err = s.collectPayment.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingOrders handles GET /api/v1/orders/pending?zone=.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	zone, err := kernel.NewZone(ctx.QueryParam("zone"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetPendingOrdersQuery(zone)
	if err != nil {
		return errorJSON(ctx, err)
	}

	pending, err := s.pendingOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPendingOrderResponses(pending))
}

// GetAvailableCouriers handles GET /api/v1/couriers/available?zone=.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	zone, err := kernel.NewZone(ctx.QueryParam("zone"))
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetAvailableCouriersQuery(zone)
	if err != nil {
		return errorJSON(ctx, err)
	}

	available, err := s.availableCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]availableCourierResponse, 0, len(available))
	for _, c := range available {
		response = append(response, availableCourierResponse{
			ID:       c.ID.String(),
			FullName: c.FullName,
			LastSeen: c.LastSeen,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetCourierStats handles GET /api/v1/couriers/:courierID/stats.
func (s *Server) GetCourierStats(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetCourierStatsQuery(courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	stats, err := s.courierStats.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCourierStatsResponse(stats))
}

// GetCourierDashboard handles GET /api/v1/couriers/:courierID/dashboard.
func (s *Server) GetCourierDashboard(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierID")
	if err != nil {
		return errorJSON(ctx, err)
	}

	query, err := queries.NewGetCourierDashboardQuery(courierID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	dashboard, err := s.courierDashboard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	active := make([]assignedOrderResponse, 0, len(dashboard.ActiveOrders))
	for _, o := range dashboard.ActiveOrders {
		active = append(active, assignedOrderResponse{
			ID:             o.ID.String(),
			Zone:           o.Zone.Code(),
			Status:         o.Status,
			TotalAmount:    o.TotalAmount,
			DeliveryFee:    o.DeliveryFee,
			CourierEarning: o.CourierEarning,
			PlacedAt:       o.PlacedAt,
			AssignedAt:     o.AssignedAt,
		})
	}

	return ctx.JSON(http.StatusOK, courierDashboardResponse{
		ID:                 dashboard.ID.String(),
		FullName:           dashboard.FullName,
		Zone:               dashboard.Zone.Code(),
		VerificationStatus: dashboard.VerificationStatus,
		Available:          dashboard.Available,
		Stats:              toCourierStatsResponse(dashboard.Stats),
		ActiveOrders:       active,
		PendingInZone:      toPendingOrderResponses(dashboard.PendingInZone),
	})
}

func toPendingOrderResponses(pending []queries.GetPendingOrdersQueryResponse) []pendingOrderResponse {
	response := make([]pendingOrderResponse, 0, len(pending))
	for _, o := range pending {
		response = append(response, pendingOrderResponse{
			ID:            o.ID.String(),
			Zone:          o.Zone.Code(),
			TotalAmount:   o.TotalAmount,
			PaymentMethod: o.PaymentMethod,
			PlacedAt:      o.PlacedAt,
		})
	}
	return response
}

func toCourierStatsResponse(stats queries.GetCourierStatsQueryResponse) courierStatsResponse {
	return courierStatsResponse{
		CompletedDeliveries: stats.CompletedDeliveries,
		ActiveOrders:        stats.ActiveOrders,
		TotalEarnings:       stats.TotalEarnings,
		TodayEarnings:       stats.TodayEarnings,
		WeekEarnings:        stats.WeekEarnings,
		AverageEarning:      stats.AverageEarning,
	}
}
