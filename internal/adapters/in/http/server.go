package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the REST API. It coordinates between HTTP handlers and
// application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	createPartnerHandler     commands.CreatePartnerCommandHandler
	updatePartnerHandler     commands.UpdatePartnerCommandHandler
	deletePartnerHandler     commands.DeletePartnerCommandHandler
	assignOrderHandler       commands.AssignOrderCommandHandler
	runBatchHandler          commands.RunAssignmentBatchCommandHandler

	// Query handlers
	getOrdersHandler           queries.GetOrdersQueryHandler
	getPartnersHandler         queries.GetPartnersQueryHandler
	getEligiblePartnersHandler queries.GetEligiblePartnersQueryHandler
	getMetricsSummaryHandler   queries.GetMetricsSummaryQueryHandler
	getAnalyticsHandler        queries.GetAnalyticsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	createPartnerHandler commands.CreatePartnerCommandHandler,
	updatePartnerHandler commands.UpdatePartnerCommandHandler,
	deletePartnerHandler commands.DeletePartnerCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	runBatchHandler commands.RunAssignmentBatchCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getPartnersHandler queries.GetPartnersQueryHandler,
	getEligiblePartnersHandler queries.GetEligiblePartnersQueryHandler,
	getMetricsSummaryHandler queries.GetMetricsSummaryQueryHandler,
	getAnalyticsHandler queries.GetAnalyticsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		updateOrderStatusHandler:   updateOrderStatusHandler,
		createPartnerHandler:       createPartnerHandler,
		updatePartnerHandler:       updatePartnerHandler,
		deletePartnerHandler:       deletePartnerHandler,
		assignOrderHandler:         assignOrderHandler,
		runBatchHandler:            runBatchHandler,
		getOrdersHandler:           getOrdersHandler,
		getPartnersHandler:         getPartnersHandler,
		getEligiblePartnersHandler: getEligiblePartnersHandler,
		getMetricsSummaryHandler:   getMetricsSummaryHandler,
		getAnalyticsHandler:        getAnalyticsHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/pending", s.GetPendingOrders)
	api.PUT("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/assign", s.AssignOrder)

	api.GET("/partners", s.GetPartners)
	api.POST("/partners", s.CreatePartner)
	api.PUT("/partners/:id", s.UpdatePartner)
	api.DELETE("/partners/:id", s.DeletePartner)
	api.GET("/partners/eligible", s.GetEligiblePartners)

	api.POST("/assignments/run", s.RunAssignmentBatch)
	api.GET("/assignments/metrics", s.GetMetricsSummary)
	api.GET("/assignments/analytics", s.GetAnalytics)

	e.GET("/health", s.Health)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new delivery order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	scheduledFor, err := kernel.ParseTimeOfDay(req.ScheduledFor)
	if err != nil {
		return badRequest(ctx, "Invalid scheduled time: "+err.Error())
	}

	items := make([]order.Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	orderID := kernel.NewUUID()
	orderNumber := fmt.Sprintf("ORD-%d", time.Now().UnixMilli())

	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		orderNumber,
		order.Customer{
			Name:    req.CustomerName,
			Phone:   req.CustomerPhone,
			Address: req.CustomerAddress,
		},
		req.Area,
		items,
		scheduledFor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:          orderID.String(),
		OrderNumber: orderNumber,
	})
}

// GetOrders handles GET /api/v1/orders - lists orders, optionally filtered
// by the status query parameter.
func (s *Server) GetOrders(ctx echo.Context) error {
	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := order.StatusFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid status filter: "+raw)
		}
		status = &parsed
	}

	query, err := queries.NewGetOrdersQuery(status)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetPendingOrders handles GET /api/v1/orders/pending - lists orders still
// awaiting assignment, oldest first.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	pending := order.Pending
	query, err := queries.NewGetOrdersQuery(&pending)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - advances an
// order through its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req UpdateOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, commands.ErrOrderNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, commands.ErrUnsupportedStatusTarget),
		errors.Is(err, errs.ErrValueIsInvalid):
		return unprocessable(ctx, err.Error())
	case errors.Is(err, ports.ErrConcurrentModification):
		return conflict(ctx, "Order was modified concurrently")
	default:
		return internalError(ctx, "Failed to update order status")
	}
}

// AssignOrder handles POST /api/v1/orders/assign - attempts to assign an
// order, either to a requested partner or to the least loaded eligible one.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var req AssignOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var partnerID *kernel.UUID
	if req.PartnerID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.PartnerID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid partner id")
		}
		partnerID = &parsed
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, partnerID)
	if err != nil {
		return badRequest(ctx, "Invalid assignment request: "+err.Error())
	}

	result, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, AssignOrderResponse{
			Order: toOrderResponseFromAggregate(result.Order),
			Partner: AssignedPartnerResponse{
				ID:    result.Partner.ID.String(),
				Name:  result.Partner.Name,
				Phone: result.Partner.Phone,
			},
		})
	case errors.Is(err, commands.ErrOrderNotFound):
		return notFound(ctx, "Order not found")
	case errors.Is(err, commands.ErrPartnerNotFound):
		return notFound(ctx, "Partner not found")
	case errors.Is(err, commands.ErrOrderAlreadyAssigned):
		return conflict(ctx, err.Error())
	case errors.Is(err, ports.ErrConcurrentModification):
		return conflict(ctx, "Assignment lost a concurrent race, try again")
	case isDispatchRejection(err):
		return unprocessable(ctx, err.Error())
	default:
		return internalError(ctx, "Failed to assign order")
	}
}

// GetPartners handles GET /api/v1/partners - lists partners in registration order.
func (s *Server) GetPartners(ctx echo.Context) error {
	query := queries.NewGetPartnersQuery()

	partners, err := s.getPartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve partners")
	}

	response := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		response[i] = PartnerResponse{
			ID:              p.ID.String(),
			Name:            p.Name,
			Email:           p.Email,
			Phone:           p.Phone,
			Status:          p.Status,
			CurrentLoad:     p.CurrentLoad,
			Areas:           p.Areas,
			ShiftStart:      p.ShiftStart,
			ShiftEnd:        p.ShiftEnd,
			Rating:          p.Rating,
			CompletedOrders: p.CompletedOrders,
			CancelledOrders: p.CancelledOrders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreatePartner handles POST /api/v1/partners - registers a new delivery partner.
func (s *Server) CreatePartner(ctx echo.Context) error {
	var req PartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shift, err := parseShift(req.ShiftStart, req.ShiftEnd)
	if err != nil {
		return badRequest(ctx, "Invalid shift: "+err.Error())
	}

	partnerID := kernel.NewUUID()

	cmd, err := commands.NewCreatePartnerCommand(
		partnerID, req.Name, req.Email, req.Phone, req.Areas, shift)
	if err != nil {
		return badRequest(ctx, "Invalid partner data: "+err.Error())
	}

	if err := s.createPartnerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		// Duplicate email or phone lands here via the DB unique indexes.
		return conflict(ctx, "Failed to create partner")
	}

	return ctx.JSON(http.StatusCreated, CreatePartnerResponse{ID: partnerID.String()})
}

// UpdatePartner handles PUT /api/v1/partners/:id - replaces a partner's profile.
func (s *Server) UpdatePartner(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid partner id")
	}

	var req PartnerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := partner.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+req.Status)
	}

	shift, err := parseShift(req.ShiftStart, req.ShiftEnd)
	if err != nil {
		return badRequest(ctx, "Invalid shift: "+err.Error())
	}

	cmd, err := commands.NewUpdatePartnerCommand(
		partnerID, req.Name, req.Email, req.Phone, status, req.Areas, shift)
	if err != nil {
		return badRequest(ctx, "Invalid partner data: "+err.Error())
	}

	err = s.updatePartnerHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, commands.ErrPartnerNotFound):
		return notFound(ctx, "Partner not found")
	default:
		// Duplicate email or phone lands here via the DB unique indexes.
		return conflict(ctx, "Failed to update partner")
	}
}

// DeletePartner handles DELETE /api/v1/partners/:id.
func (s *Server) DeletePartner(ctx echo.Context) error {
	partnerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid partner id")
	}

	cmd, err := commands.NewDeletePartnerCommand(partnerID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	err = s.deletePartnerHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.NoContent(http.StatusNoContent)
	case errors.Is(err, commands.ErrPartnerNotFound):
		return notFound(ctx, "Partner not found")
	default:
		return internalError(ctx, "Failed to delete partner")
	}
}

// GetEligiblePartners handles GET /api/v1/partners/eligible - lists partners
// able to take an order in the given area, optionally at a given time of day.
func (s *Server) GetEligiblePartners(ctx echo.Context) error {
	var at *kernel.TimeOfDay
	if raw := ctx.QueryParam("at"); raw != "" {
		parsed, err := kernel.ParseTimeOfDay(raw)
		if err != nil {
			return badRequest(ctx, "Invalid time: "+raw)
		}
		at = &parsed
	}

	query, err := queries.NewGetEligiblePartnersQuery(ctx.QueryParam("area"), at)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	partners, err := s.getEligiblePartnersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve eligible partners")
	}

	response := make([]EligiblePartnerResponse, len(partners))
	for i, p := range partners {
		response[i] = EligiblePartnerResponse{
			ID:          p.ID.String(),
			Name:        p.Name,
			Phone:       p.Phone,
			CurrentLoad: p.CurrentLoad,
			Areas:       p.Areas,
			ShiftStart:  p.ShiftStart,
			ShiftEnd:    p.ShiftEnd,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RunAssignmentBatch handles POST /api/v1/assignments/run - sweeps every
// pending order through an assignment attempt.
func (s *Server) RunAssignmentBatch(ctx echo.Context) error {
	cmd := commands.NewRunAssignmentBatchCommand()

	result, err := s.runBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Batch assignment run failed")
	}

	return ctx.JSON(http.StatusOK, BatchRunResponse{
		TotalProcessed: result.TotalProcessed,
		SuccessCount:   result.SuccessCount,
		FailureCount:   result.FailureCount,
		FailureReasons: result.FailureReasons,
	})
}

// GetMetricsSummary handles GET /api/v1/assignments/metrics.
func (s *Server) GetMetricsSummary(ctx echo.Context) error {
	query := queries.NewGetMetricsSummaryQuery()

	summary, err := s.getMetricsSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve metrics")
	}

	reasons := make([]FailureReasonResponse, len(summary.FailureReasons))
	for i, bucket := range summary.FailureReasons {
		reasons[i] = FailureReasonResponse{Reason: bucket.Reason, Count: bucket.Count}
	}

	return ctx.JSON(http.StatusOK, MetricsSummaryResponse{
		TotalAssigned:  summary.TotalAssigned,
		SuccessRate:    summary.SuccessRate,
		AverageTime:    summary.AverageTime,
		FailureReasons: reasons,
	})
}

// GetAnalytics handles GET /api/v1/assignments/analytics.
func (s *Server) GetAnalytics(ctx echo.Context) error {
	query := queries.NewGetAnalyticsQuery()

	analytics, err := s.getAnalyticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve analytics")
	}

	performance := make([]PartnerPerformanceResponse, len(analytics.PartnerPerformance))
	for i, p := range analytics.PartnerPerformance {
		performance[i] = PartnerPerformanceResponse{
			ID:              p.ID.String(),
			Name:            p.Name,
			CurrentLoad:     p.CurrentLoad,
			CompletedOrders: p.CompletedOrders,
			CancelledOrders: p.CancelledOrders,
			CompletionRate:  p.CompletionRate,
		}
	}

	topAreas := make([]AreaOrderCountResponse, len(analytics.TopAreas))
	for i, a := range analytics.TopAreas {
		topAreas[i] = AreaOrderCountResponse{Area: a.Area, OrderCount: a.OrderCount}
	}

	trends := make([]DailyTrendResponse, len(analytics.DailyTrends))
	for i, d := range analytics.DailyTrends {
		trends[i] = DailyTrendResponse{
			Day:         d.Day,
			Total:       d.Total,
			Success:     d.Success,
			Failed:      d.Failed,
			SuccessRate: d.SuccessRate,
		}
	}

	return ctx.JSON(http.StatusOK, AnalyticsResponse{
		OrderStatus: OrderStatusResponse{
			Total:     analytics.OrderStatus.Total,
			Pending:   analytics.OrderStatus.Pending,
			Assigned:  analytics.OrderStatus.Assigned,
			Picked:    analytics.OrderStatus.Picked,
			Delivered: analytics.OrderStatus.Delivered,
			Cancelled: analytics.OrderStatus.Cancelled,
		},
		PartnerPerformance: performance,
		TopAreas:           topAreas,
		DailyTrends:        trends,
	})
}

// parseShift parses a pair of HH:mm strings into a shift window.
func parseShift(start, end string) (partner.Shift, error) {
	shiftStart, err := kernel.ParseTimeOfDay(start)
	if err != nil {
		return partner.Shift{}, err
	}

	shiftEnd, err := kernel.ParseTimeOfDay(end)
	if err != nil {
		return partner.Shift{}, err
	}

	return partner.NewShift(shiftStart, shiftEnd)
}

// isDispatchRejection reports whether the error is a business eligibility
// or capacity rejection rather than an infrastructure failure.
func isDispatchRejection(err error) bool {
	return errors.Is(err, services.ErrNoEligiblePartners) ||
		errors.Is(err, services.ErrNoPartnersForScheduledTime) ||
		errors.Is(err, services.ErrPartnerInactive) ||
		errors.Is(err, services.ErrAreaNotServed) ||
		errors.Is(err, services.ErrOutsideShift) ||
		errors.Is(err, partner.ErrPartnerAtCapacity)
}

func toOrderResponses(orders []queries.GetOrdersQueryResponse) []OrderResponse {
	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		var partnerID *string
		if o.PartnerID != nil {
			id := o.PartnerID.String()
			partnerID = &id
		}

		response[i] = OrderResponse{
			ID:            o.ID.String(),
			OrderNumber:   o.OrderNumber,
			CustomerName:  o.CustomerName,
			CustomerPhone: o.CustomerPhone,
			Area:          o.Area,
			ScheduledFor:  o.ScheduledFor,
			Status:        o.Status,
			PartnerID:     partnerID,
			TotalAmount:   o.TotalAmount,
		}
	}

	return response
}

func toOrderResponseFromAggregate(o *order.Order) OrderResponse {
	var partnerID *string
	if o.Partner() != nil {
		id := o.Partner().String()
		partnerID = &id
	}

	return OrderResponse{
		ID:            o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		CustomerName:  o.Customer().Name,
		CustomerPhone: o.Customer().Phone,
		Area:          o.Area(),
		ScheduledFor:  o.ScheduledFor().String(),
		Status:        o.Status().String(),
		PartnerID:     partnerID,
		TotalAmount:   o.TotalAmount(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{
		Code: http.StatusNotFound, Message: message})
}

func conflict(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusConflict, ErrorResponse{
		Code: http.StatusConflict, Message: message})
}

func unprocessable(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Code: http.StatusUnprocessableEntity, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code: http.StatusInternalServerError, Message: message})
}
