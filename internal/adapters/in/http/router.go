package http

import (
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"factory/internal/core/domain/model/kernel"
)

// resources maps URL segments onto order types.
func resources() map[string]kernel.OrderType {
	return map[string]kernel.OrderType{
		"customer-orders":    kernel.CustomerOrderType,
		"warehouse-orders":   kernel.WarehouseOrderType,
		"production-orders":  kernel.ProductionOrderType,
		"control-orders":     kernel.ControlOrderType,
		"workstation-orders": kernel.WorkstationOrderType,
		"supply-orders":      kernel.SupplyOrderType,
	}
}

type jsonSerializer struct{}

func (jsonSerializer) Serialize(ctx echo.Context, i any, indent string) error {
	enc := json.NewEncoder(ctx.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(ctx echo.Context, i any) error {
	if err := json.NewDecoder(ctx.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return nil
}

// NewEcho builds the echo instance with request ids, panic recovery and zap access logs.
func NewEcho(logger *zap.Logger, level string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Logger.SetLevel(parseLevel(level))

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	return e
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

// Register mounts the health probe, the metrics endpoint and the /api/v1 routes.
func Register(e *echo.Echo, s *Server) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	api.POST("/customer-orders", s.CreateCustomerOrder)
	api.POST("/customer-orders/:id/process", s.ProcessCustomerOrder)

	api.POST("/warehouse-orders/:id/confirm", s.ConfirmWarehouseOrder)
	api.POST("/warehouse-orders/:id/production", s.RequestProduction)
	api.POST("/warehouse-orders/:id/fulfill", s.FulfillWarehouseOrder)
	api.POST("/warehouse-orders/:id/override", s.OverrideWarehouseOrderStatus)

	api.POST("/production-orders/:id/schedule", s.ScheduleProductionOrder)
	api.POST("/production-orders/:id/submit", s.SubmitProductionOrderCompletion)
	api.POST("/production-orders/:id/complete", s.CompleteProductionOrder)

	api.POST("/control-orders/:id/supply", s.RequestControlOrderSupply)
	api.POST("/control-orders/:id/dispatch", s.DispatchControlOrder)

	api.POST("/workstation-orders/:id/start", s.StartWorkstationOrder)
	api.POST("/workstation-orders/:id/complete", s.CompleteWorkstationOrder)

	api.POST("/supply-orders/:id/fulfill", s.FulfillSupplyOrder)

	for segment, orderType := range resources() {
		api.GET("/"+segment, s.ListOrders(orderType))
		api.GET("/"+segment+"/:id", s.GetOrder(orderType))
		api.POST("/"+segment+"/:id/actions/:action", s.Transition(orderType))
	}
	for _, segment := range []string{"customer-orders", "production-orders", "control-orders"} {
		api.GET("/"+segment+"/:id/progress", s.GetProgress(resources()[segment]))
	}

	api.GET("/stock/:workstationId/:itemType/:itemId", s.GetStockLevel)
}
