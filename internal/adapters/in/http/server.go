package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"factory/internal/core/application/orchestration"
	"factory/internal/core/application/usecases/commands"
	"factory/internal/core/application/usecases/queries"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/warehouseorder"
)

// Server turns HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *zap.Logger
}

func NewServer(handlers Handlers, logger *zap.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With(zap.String("component", "http-server")),
	}
}

// CreateCustomerOrder handles POST /api/v1/customer-orders.
func (s *Server) CreateCustomerOrder(ctx echo.Context) error {
	var body NewCustomerOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lines := make([]customerorder.Line, 0, len(body.Lines))
	var lineErrs []error
	for _, l := range body.Lines {
		itemType, err := kernel.ParseItemType(l.ItemType)
		if err != nil {
			lineErrs = append(lineErrs, err)
			continue
		}
		line, err := customerorder.NewLine(itemType, kernel.ID(l.ItemID), l.Quantity)
		if err != nil {
			lineErrs = append(lineErrs, err)
			continue
		}
		lines = append(lines, line)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateCustomerOrderCommand(lines)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.CreateCustomerOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{ID: result.ID, Number: result.Number, Report: toReport(result.Report)})
}

// ProcessCustomerOrder handles POST /api/v1/customer-orders/:id/process.
func (s *Server) ProcessCustomerOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.ProcessCustomerOrder, toRouting)
}

// ConfirmWarehouseOrder handles POST /api/v1/warehouse-orders/:id/confirm.
func (s *Server) ConfirmWarehouseOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.ConfirmWarehouseOrder, toRouting)
}

// RequestProduction handles POST /api/v1/warehouse-orders/:id/production.
func (s *Server) RequestProduction(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.RequestProduction, func(id kernel.ID) ProductionRequested {
		return ProductionRequested{ProductionOrderID: id}
	})
}

// FulfillWarehouseOrder handles POST /api/v1/warehouse-orders/:id/fulfill.
func (s *Server) FulfillWarehouseOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.FulfillWarehouseOrder, func(r orchestration.FulfillResult) Fulfillment {
		return Fulfillment{FinalAssemblyOrders: r.FinalAssemblyOrders, Report: toReport(r.Report)}
	})
}

// OverrideWarehouseOrderStatus handles POST /api/v1/warehouse-orders/:id/override.
func (s *Server) OverrideWarehouseOrderStatus(ctx echo.Context) error {
	id, err := kernel.ParseID(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	var body StatusOverride
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := warehouseorder.ParseStatus(body.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewOverrideWarehouseOrderStatusCommand(id, target, body.Reason, body.Operator)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.OverrideWarehouseStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toTransition(result))
}

// ScheduleProductionOrder handles POST /api/v1/production-orders/:id/schedule.
func (s *Server) ScheduleProductionOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.ScheduleProductionOrder, toSchedule)
}

// SubmitProductionOrderCompletion handles POST /api/v1/production-orders/:id/submit.
func (s *Server) SubmitProductionOrderCompletion(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.SubmitProductionOrder, toReport)
}

// CompleteProductionOrder handles POST /api/v1/production-orders/:id/complete.
func (s *Server) CompleteProductionOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.CompleteProductionOrder, toCompletion)
}

// RequestControlOrderSupply handles POST /api/v1/control-orders/:id/supply.
func (s *Server) RequestControlOrderSupply(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.RequestControlSupply, func(r orchestration.SupplyResult) Supply {
		return Supply{SupplyOrders: r.SupplyOrders, Raised: r.Raised, Report: toReport(r.Report)}
	})
}

// DispatchControlOrder handles POST /api/v1/control-orders/:id/dispatch.
func (s *Server) DispatchControlOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.DispatchControlOrder, func(r orchestration.DispatchResult) Dispatch {
		return Dispatch{WorkstationOrders: r.WorkstationOrders, SupplyOrders: r.SupplyOrders, Report: toReport(r.Report)}
	})
}

// StartWorkstationOrder handles POST /api/v1/workstation-orders/:id/start.
func (s *Server) StartWorkstationOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.StartWorkstationOrder, toTransition)
}

// CompleteWorkstationOrder handles POST /api/v1/workstation-orders/:id/complete.
func (s *Server) CompleteWorkstationOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.CompleteWorkstationOrder, toCompletion)
}

// FulfillSupplyOrder handles POST /api/v1/supply-orders/:id/fulfill.
func (s *Server) FulfillSupplyOrder(ctx echo.Context) error {
	return runOrderCommand(s, ctx, s.handlers.FulfillSupplyOrder, toTransition)
}

// Transition handles POST /api/v1/<orders>/:id/actions/:action.
func (s *Server) Transition(orderType kernel.OrderType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := kernel.ParseID(ctx.Param("id"))
		if err != nil {
			return s.fail(ctx, err)
		}

		cmd, err := commands.NewTransitionCommand(orderType, id, commands.Action(ctx.Param("action")))
		if err != nil {
			return s.fail(ctx, err)
		}

		result, err := s.handlers.Transition.Handle(ctx.Request().Context(), cmd)
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toTransition(result))
	}
}

// GetOrder handles GET /api/v1/<orders>/:id.
func (s *Server) GetOrder(orderType kernel.OrderType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := kernel.ParseID(ctx.Param("id"))
		if err != nil {
			return s.fail(ctx, err)
		}

		query, err := queries.NewGetOrderQuery(orderType, id)
		if err != nil {
			return s.fail(ctx, err)
		}

		view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toOrder(view))
	}
}

// ListOrders handles GET /api/v1/<orders>?status=...
func (s *Server) ListOrders(orderType kernel.OrderType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		query, err := queries.NewListOrdersQuery(orderType, ctx.QueryParam("status"))
		if err != nil {
			return s.fail(ctx, err)
		}

		views, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
		if err != nil {
			return s.fail(ctx, err)
		}

		response := make([]Order, len(views))
		for i, view := range views {
			response[i] = toOrder(view)
		}
		return ctx.JSON(http.StatusOK, response)
	}
}

// GetProgress handles GET /api/v1/<orders>/:id/progress.
func (s *Server) GetProgress(orderType kernel.OrderType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := kernel.ParseID(ctx.Param("id"))
		if err != nil {
			return s.fail(ctx, err)
		}

		query, err := queries.NewGetProgressQuery(orderType, id)
		if err != nil {
			return s.fail(ctx, err)
		}

		response, err := s.handlers.GetProgress.Handle(ctx.Request().Context(), query)
		if err != nil {
			return s.fail(ctx, err)
		}
		return ctx.JSON(http.StatusOK, toOrderProgress(response))
	}
}

// GetStockLevel handles GET /api/v1/stock/:workstationId/:itemType/:itemId.
func (s *Server) GetStockLevel(ctx echo.Context) error {
	workstationID, err := strconv.Atoi(ctx.Param("workstationId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid workstation id",
		})
	}
	itemType, err := kernel.ParseItemType(ctx.Param("itemType"))
	if err != nil {
		return s.fail(ctx, err)
	}
	itemID, err := kernel.ParseID(ctx.Param("itemId"))
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetStockLevelQuery(plant.WorkstationID(workstationID), itemType, itemID)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.handlers.GetStockLevel.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, StockLevel{
		WorkstationID: response.WorkstationID,
		ItemType:      response.ItemType.String(),
		ItemID:        response.ItemID,
		Quantity:      response.Quantity,
	})
}

func runOrderCommand[R, V any](
	s *Server,
	ctx echo.Context,
	handler Handler[commands.OrderCommand, R],
	view func(R) V,
) error {
	id, err := kernel.ParseID(ctx.Param("id"))
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewOrderCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := handler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, view(result))
}

func workstationKey(id plant.WorkstationID) string {
	return strconv.Itoa(int(id))
}
