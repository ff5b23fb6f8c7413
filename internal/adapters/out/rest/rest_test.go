package rest_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"factory/internal/adapters/out/rest"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
)

const (
	inventoryURL  = "http://inventory.test"
	schedulingURL = "http://scheduling.test"
	masterdataURL = "http://masterdata.test"
)

func newHTTPClient(t *testing.T) *http.Client {
	t.Helper()
	client := rest.NewHTTPClient(time.Second)
	gock.InterceptClient(client)
	t.Cleanup(func() {
		assert.True(t, gock.IsDone(), "pending mocks: %v", gock.Pending())
		gock.Off()
	})
	return client
}

func TestInventoryClient_CreditStock(t *testing.T) {
	gock.New(inventoryURL).
		Post("/api/stock/credit").
		MatchType("json").
		JSON(map[string]any{
			"workstationId": 8,
			"itemType":      "MODULE",
			"itemId":        11,
			"quantity":      3,
			"reason":        "PRODUCTION",
			"notes":         "PO-00001",
		}).
		Reply(http.StatusOK)

	client := rest.NewInventoryClient(inventoryURL, newHTTPClient(t), zap.NewNop())
	err := client.CreditStock(t.Context(), 8, kernel.Item{Type: kernel.Module, ID: 11, Quantity: 3},
		ports.ReasonProduction, "PO-00001")
	require.NoError(t, err)
}

func TestInventoryClient_DebitStockSurfacesServerError(t *testing.T) {
	gock.New(inventoryURL).
		Post("/api/stock/debit").
		Reply(http.StatusInternalServerError).
		BodyString("ledger locked")

	client := rest.NewInventoryClient(inventoryURL, newHTTPClient(t), zap.NewNop())
	err := client.DebitStock(t.Context(), 9, kernel.Item{Type: kernel.Part, ID: 21, Quantity: 1},
		ports.ReasonSupply, "")

	var statusErr *rest.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, "ledger locked", statusErr.Body)
}

func TestInventoryClient_DebitStockRejectsInvalidItem(t *testing.T) {
	client := rest.NewInventoryClient(inventoryURL, newHTTPClient(t), zap.NewNop())
	err := client.DebitStock(t.Context(), 9, kernel.Item{Type: kernel.Part, ID: 21}, ports.ReasonSupply, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestInventoryClient_StockLevel(t *testing.T) {
	gock.New(inventoryURL).
		Get("/api/stock/workstations/8/MODULE/11").
		Reply(http.StatusOK).
		JSON(map[string]any{"quantity": 7})
	gock.New(inventoryURL).
		Get("/api/stock/workstations/8/MODULE/12").
		Reply(http.StatusNotFound)

	client := rest.NewInventoryClient(inventoryURL, newHTTPClient(t), zap.NewNop())

	level, err := client.StockLevel(t.Context(), 8, kernel.Module, 11)
	require.NoError(t, err)
	assert.Equal(t, 7, level)

	level, err = client.StockLevel(t.Context(), 8, kernel.Module, 12)
	require.NoError(t, err)
	assert.Zero(t, level)
}

func TestSchedulingClient_Submit(t *testing.T) {
	start := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	gock.New(schedulingURL).
		Post("/api/scheduling/schedules").
		MatchType("json").
		JSON(map[string]any{
			"orderNumber": "PO-00001",
			"priority":    "HIGH",
			"dueDate":     "2026-03-05T00:00:00Z",
			"lineItems": []map[string]any{
				{"itemType": "MODULE", "itemId": 11, "quantity": 2, "workstationType": "ASSEMBLY"},
			},
		}).
		Reply(http.StatusCreated).
		JSON(map[string]any{
			"scheduleId": "SCH-42",
			"tasks": []map[string]any{
				{
					"workstationId":   5,
					"itemId":          11,
					"itemName":        "motor module",
					"quantity":        2,
					"startTime":       start.Format(time.RFC3339),
					"endTime":         start.Add(90 * time.Minute).Format(time.RFC3339),
					"durationMinutes": 90,
				},
				{
					"workstationId": 2,
					"itemId":        21,
					"quantity":      4,
					"startTime":     start.Format(time.RFC3339),
					"endTime":       start.Add(time.Hour).Format(time.RFC3339),
				},
			},
		})

	client := rest.NewSchedulingClient(schedulingURL, newHTTPClient(t), zap.NewNop())
	plan, err := client.Submit(t.Context(), ports.ScheduleRequest{
		OrderNumber: "PO-00001",
		Priority:    "HIGH",
		DueDate:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		LineItems: []ports.ScheduleLineItem{
			{ItemType: kernel.Module, ItemID: 11, Quantity: 2, WorkstationType: "ASSEMBLY"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SCH-42", plan.ScheduleID)
	require.Len(t, plan.Tasks, 2)
	assert.Equal(t, plant.WorkstationID(5), plan.Tasks[0].WorkstationID)
	assert.Equal(t, "motor module", plan.Tasks[0].ItemName)
	assert.True(t, start.Equal(plan.Tasks[0].StartTime))
	assert.Equal(t, 90*time.Minute, plan.Tasks[0].Duration)
	assert.Equal(t, time.Hour, plan.Tasks[1].Duration)
}

func TestSchedulingClient_SubmitFailures(t *testing.T) {
	gock.New(schedulingURL).
		Post("/api/scheduling/schedules").
		Reply(http.StatusBadRequest).
		BodyString("no capacity")

	client := rest.NewSchedulingClient(schedulingURL, newHTTPClient(t), zap.NewNop())

	_, err := client.Submit(t.Context(), ports.ScheduleRequest{OrderNumber: "PO-00002"})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = client.Submit(t.Context(), ports.ScheduleRequest{
		OrderNumber: "PO-00002",
		LineItems:   []ports.ScheduleLineItem{{ItemType: kernel.Part, ItemID: 21, Quantity: 1}},
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestMasterdataClient_Lookup(t *testing.T) {
	gock.New(masterdataURL).
		Get("/api/masterdata/products/1").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"id":          1,
			"name":        "standard robot",
			"description": "two modules",
			"components": []map[string]any{
				{"itemType": "MODULE", "itemId": 11, "quantity": 1},
				{"itemType": "MODULE", "itemId": 12, "quantity": 2},
			},
		})

	client := rest.NewMasterdataClient(masterdataURL, newHTTPClient(t), zap.NewNop())
	entry, err := client.Lookup(t.Context(), ports.CatalogProduct, 1)
	require.NoError(t, err)

	assert.Equal(t, "standard robot", entry.Name)
	assert.Equal(t, ports.CatalogProduct, entry.Kind)
	assert.Equal(t, []kernel.Item{
		{Type: kernel.Module, ID: 11, Quantity: 1},
		{Type: kernel.Module, ID: 12, Quantity: 2},
	}, entry.Components)
}

func TestMasterdataClient_LookupUnknownEntry(t *testing.T) {
	gock.New(masterdataURL).
		Get("/api/masterdata/parts/404").
		Reply(http.StatusNotFound)

	client := rest.NewMasterdataClient(masterdataURL, newHTTPClient(t), zap.NewNop())
	_, err := client.Lookup(t.Context(), ports.CatalogPart, 404)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestMasterdataClient_LookupRejectsBadComponent(t *testing.T) {
	gock.New(masterdataURL).
		Get("/api/masterdata/modules/11").
		Reply(http.StatusOK).
		JSON(map[string]any{
			"id":         11,
			"components": []map[string]any{{"itemType": "GADGET", "itemId": 1, "quantity": 1}},
		})

	client := rest.NewMasterdataClient(masterdataURL, newHTTPClient(t), zap.NewNop())
	_, err := client.Lookup(t.Context(), ports.CatalogModule, 11)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
