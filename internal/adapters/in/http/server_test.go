package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpadapter "factory/internal/adapters/in/http"
	"factory/internal/core/application/notification"
	"factory/internal/core/application/orchestration"
	"factory/internal/core/application/usecases/commands"
	"factory/internal/core/application/usecases/queries"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/pkg/errs"
)

func newEcho(handlers httpadapter.Handlers) *echo.Echo {
	e := httpadapter.NewEcho(zap.NewNop(), "error")
	httpadapter.Register(e, httpadapter.NewServer(handlers, zap.NewNop()))
	return e
}

func do(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	e := newEcho(httpadapter.Handlers{})

	rec := do(t, e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = do(t, e, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateCustomerOrder(t *testing.T) {
	var received commands.CreateCustomerOrderCommand
	e := newEcho(httpadapter.Handlers{
		CreateCustomerOrder: httpadapter.HandlerFunc[commands.CreateCustomerOrderCommand, commands.CreateCustomerOrderResult](
			func(_ context.Context, cmd commands.CreateCustomerOrderCommand) (commands.CreateCustomerOrderResult, error) {
				received = cmd
				return commands.CreateCustomerOrderResult{ID: 1, Number: "ORD-0001"}, nil
			}),
	})

	rec := do(t, e, http.MethodPost, "/api/v1/customer-orders",
		`{"lines":[{"itemType":"PRODUCT","itemId":1,"quantity":2},{"itemType":"MODULE","itemId":11,"quantity":1}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[httpadapter.CreatedOrder](t, rec)
	assert.Equal(t, kernel.ID(1), created.ID)
	assert.Equal(t, "ORD-0001", created.Number)
	assert.True(t, created.Report.OK)

	require.Len(t, received.Lines(), 2)
	assert.Equal(t, kernel.Product, received.Lines()[0].ItemType)
	assert.Equal(t, 2, received.Lines()[0].Quantity)
}

func TestCreateCustomerOrder_InvalidInput(t *testing.T) {
	called := false
	e := newEcho(httpadapter.Handlers{
		CreateCustomerOrder: httpadapter.HandlerFunc[commands.CreateCustomerOrderCommand, commands.CreateCustomerOrderResult](
			func(context.Context, commands.CreateCustomerOrderCommand) (commands.CreateCustomerOrderResult, error) {
				called = true
				return commands.CreateCustomerOrderResult{}, nil
			}),
	})

	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"lines":`},
		{"unknown item type", `{"lines":[{"itemType":"GADGET","itemId":1,"quantity":1}]}`},
		{"zero quantity", `{"lines":[{"itemType":"PRODUCT","itemId":1,"quantity":0}]}`},
		{"no lines", `{"lines":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, e, http.MethodPost, "/api/v1/customer-orders", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, http.StatusBadRequest, decode[httpadapter.Error](t, rec).Code)
		})
	}
	assert.False(t, called)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", errs.NewObjectNotFoundError("customer order", kernel.ID(7)), http.StatusNotFound},
		{"invalid transition", errs.NewInvalidStateTransitionError("customer order", kernel.ID(7), "PROCESSING", "process"), http.StatusBadRequest},
		{"invalid value", errs.NewValueIsInvalidError("id"), http.StatusBadRequest},
		{"concurrent write", errs.ErrConcurrentModification, http.StatusConflict},
		{"anything else", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(httpadapter.Handlers{
				ProcessCustomerOrder: httpadapter.HandlerFunc[commands.OrderCommand, orchestration.RoutingResult](
					func(context.Context, commands.OrderCommand) (orchestration.RoutingResult, error) {
						return orchestration.RoutingResult{}, tt.err
					}),
			})

			rec := do(t, e, http.MethodPost, "/api/v1/customer-orders/7/process", "")
			assert.Equal(t, tt.status, rec.Code)

			body := decode[httpadapter.Error](t, rec)
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), body.RequestID)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, assert.AnError.Error())
			}
		})
	}
}

func TestProcessCustomerOrder_InvalidID(t *testing.T) {
	e := newEcho(httpadapter.Handlers{})
	rec := do(t, e, http.MethodPost, "/api/v1/customer-orders/abc/process", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessCustomerOrder(t *testing.T) {
	e := newEcho(httpadapter.Handlers{
		ProcessCustomerOrder: httpadapter.HandlerFunc[commands.OrderCommand, orchestration.RoutingResult](
			func(_ context.Context, cmd commands.OrderCommand) (orchestration.RoutingResult, error) {
				var report notification.Report
				report.Record("event.publish", assert.AnError)
				return orchestration.RoutingResult{
					Scenario:          kernel.DirectProduction,
					ProductionOrderID: (cmd.OrderID() + 10).Ptr(),
					Report:            report,
				}, nil
			}),
	})

	rec := do(t, e, http.MethodPost, "/api/v1/customer-orders/3/process", "")
	require.Equal(t, http.StatusOK, rec.Code)

	routing := decode[httpadapter.Routing](t, rec)
	assert.Equal(t, kernel.DirectProduction.String(), routing.Scenario)
	require.NotNil(t, routing.ProductionOrderID)
	assert.Equal(t, kernel.ID(13), *routing.ProductionOrderID)
	assert.Nil(t, routing.WarehouseOrderID)
	assert.False(t, routing.Report.OK)
	assert.Len(t, routing.Report.Failures, 1)
}

func TestControlOrderSupplyThenDispatch(t *testing.T) {
	fulfilled := false
	e := newEcho(httpadapter.Handlers{
		RequestControlSupply: httpadapter.HandlerFunc[commands.OrderCommand, orchestration.SupplyResult](
			func(_ context.Context, cmd commands.OrderCommand) (orchestration.SupplyResult, error) {
				return orchestration.SupplyResult{SupplyOrders: []kernel.ID{cmd.OrderID() * 10}, Raised: true}, nil
			}),
		DispatchControlOrder: httpadapter.HandlerFunc[commands.OrderCommand, orchestration.DispatchResult](
			func(_ context.Context, cmd commands.OrderCommand) (orchestration.DispatchResult, error) {
				if !fulfilled {
					return orchestration.DispatchResult{}, errs.NewInvalidStateTransitionError(
						"control order", cmd.OrderID(), "PENDING", "dispatch (1 supply orders, none fulfilled)")
				}
				return orchestration.DispatchResult{WorkstationOrders: []kernel.ID{1}}, nil
			}),
	})

	rec := do(t, e, http.MethodPost, "/api/v1/control-orders/4/supply", "")
	require.Equal(t, http.StatusOK, rec.Code)
	supply := decode[httpadapter.Supply](t, rec)
	assert.True(t, supply.Raised)
	assert.Equal(t, []kernel.ID{40}, supply.SupplyOrders)

	rec = do(t, e, http.MethodPost, "/api/v1/control-orders/4/dispatch", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fulfilled = true
	rec = do(t, e, http.MethodPost, "/api/v1/control-orders/4/dispatch", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []kernel.ID{1}, decode[httpadapter.Dispatch](t, rec).WorkstationOrders)
}

func TestOverrideWarehouseOrderStatus(t *testing.T) {
	var received commands.OverrideWarehouseOrderStatusCommand
	e := newEcho(httpadapter.Handlers{
		OverrideWarehouseStatus: httpadapter.HandlerFunc[commands.OverrideWarehouseOrderStatusCommand, commands.TransitionResult](
			func(_ context.Context, cmd commands.OverrideWarehouseOrderStatusCommand) (commands.TransitionResult, error) {
				received = cmd
				return commands.TransitionResult{OrderID: cmd.OrderID(), OrderNumber: "WO-0004", Status: "REJECTED"}, nil
			}),
	})

	rec := do(t, e, http.MethodPost, "/api/v1/warehouse-orders/4/override",
		`{"status":"REJECTED","reason":"scheduler lost the order","operator":"shift-lead"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "REJECTED", decode[httpadapter.Transition](t, rec).Status)
	assert.Equal(t, warehouseorder.Rejected, received.Target())
	assert.Equal(t, "shift-lead", received.Operator())

	rec = do(t, e, http.MethodPost, "/api/v1/warehouse-orders/4/override", `{"status":"REJECTED","operator":"shift-lead"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, "/api/v1/warehouse-orders/4/override", `{"status":"LOST","reason":"x","operator":"y"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionRoutes(t *testing.T) {
	var received []commands.TransitionCommand
	e := newEcho(httpadapter.Handlers{
		Transition: httpadapter.HandlerFunc[commands.TransitionCommand, commands.TransitionResult](
			func(_ context.Context, cmd commands.TransitionCommand) (commands.TransitionResult, error) {
				received = append(received, cmd)
				return commands.TransitionResult{OrderID: cmd.OrderID(), Status: "HALTED"}, nil
			}),
	})

	rec := do(t, e, http.MethodPost, "/api/v1/workstation-orders/5/actions/halt", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, received, 1)
	assert.Equal(t, commands.WorkstationOrder, received[0].OrderType())
	assert.Equal(t, commands.ActionHalt, received[0].Action())
	assert.Equal(t, kernel.ID(5), received[0].OrderID())

	rec = do(t, e, http.MethodPost, "/api/v1/customer-orders/5/actions/halt", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, received, 1)
}

func TestGetOrder(t *testing.T) {
	created := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	e := newEcho(httpadapter.Handlers{
		GetOrder: httpadapter.HandlerFunc[queries.GetOrderQuery, queries.OrderView](
			func(_ context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
				if query.OrderID() != 1 {
					return queries.OrderView{}, errs.NewObjectNotFoundError("warehouse order", query.OrderID())
				}
				return queries.OrderView{
					ID:         1,
					Number:     "WO-0001",
					Type:       query.OrderType(),
					Status:     "CONFIRMED",
					Items:      []queries.ItemView{{Type: "MODULE", ID: 11, Quantity: 2}},
					Links:      map[kernel.OrderType]kernel.ID{kernel.CustomerOrderType: 1},
					Attributes: map[string]string{"scenario": "PRODUCTION_REQUIRED"},
					CreatedAt:  created,
					UpdatedAt:  created,
				}, nil
			}),
	})

	rec := do(t, e, http.MethodGet, "/api/v1/warehouse-orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	order := decode[httpadapter.Order](t, rec)
	assert.Equal(t, "warehouse_order", order.Type)
	assert.Equal(t, map[string]kernel.ID{"customer_order": 1}, order.Links)
	assert.Equal(t, []httpadapter.Item{{Type: "MODULE", ID: 11, Quantity: 2}}, order.Items)
	assert.True(t, created.Equal(order.CreatedAt))

	rec = do(t, e, http.MethodGet, "/api/v1/warehouse-orders/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListOrders(t *testing.T) {
	e := newEcho(httpadapter.Handlers{
		ListOrders: httpadapter.HandlerFunc[queries.ListOrdersQuery, []queries.OrderView](
			func(_ context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error) {
				return []queries.OrderView{{ID: 2, Type: query.OrderType(), Status: query.Status()}}, nil
			}),
	})

	rec := do(t, e, http.MethodGet, "/api/v1/supply-orders?status=PENDING", "")
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]httpadapter.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, "PENDING", orders[0].Status)

	rec = do(t, e, http.MethodGet, "/api/v1/supply-orders?status=LOST", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProgress(t *testing.T) {
	e := newEcho(httpadapter.Handlers{
		GetProgress: httpadapter.HandlerFunc[queries.GetProgressQuery, queries.GetProgressQueryResponse](
			func(_ context.Context, query queries.GetProgressQuery) (queries.GetProgressQueryResponse, error) {
				return queries.GetProgressQueryResponse{
					OrderID:   query.OrderID(),
					OrderType: query.OrderType(),
					Progress:  queries.ProgressView{Total: 2, Completed: 1, Percent: 50},
				}, nil
			}),
	})

	rec := do(t, e, http.MethodGet, "/api/v1/production-orders/1/progress", "")
	require.Equal(t, http.StatusOK, rec.Code)
	progress := decode[httpadapter.OrderProgress](t, rec)
	assert.Equal(t, httpadapter.Progress{Total: 2, Completed: 1, Percent: 50}, progress.Progress)

	rec = do(t, e, http.MethodGet, "/api/v1/warehouse-orders/1/progress", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetStockLevel(t *testing.T) {
	e := newEcho(httpadapter.Handlers{
		GetStockLevel: httpadapter.HandlerFunc[queries.GetStockLevelQuery, queries.GetStockLevelQueryResponse](
			func(_ context.Context, query queries.GetStockLevelQuery) (queries.GetStockLevelQueryResponse, error) {
				return queries.GetStockLevelQueryResponse{
					WorkstationID: query.WorkstationID(),
					ItemType:      query.ItemType(),
					ItemID:        query.ItemID(),
					Quantity:      12,
				}, nil
			}),
	})

	rec := do(t, e, http.MethodGet, "/api/v1/stock/8/MODULE/11", "")
	require.Equal(t, http.StatusOK, rec.Code)
	level := decode[httpadapter.StockLevel](t, rec)
	assert.Equal(t, 12, level.Quantity)
	assert.Equal(t, "MODULE", level.ItemType)

	rec = do(t, e, http.MethodGet, "/api/v1/stock/x/MODULE/11", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
