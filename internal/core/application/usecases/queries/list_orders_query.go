package queries

import (
	"errors"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery lists the orders of one level in a given status, ordered by id.
// The status is parsed against the order type in the constructor.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	orderType kernel.OrderType
	status    string

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(orderType kernel.OrderType, status string) (ListOrdersQuery, error) {
	query := ListOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := orderType.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if err := parseStatus(orderType, status); err != nil {
		return ListOrdersQuery{}, err
	}
	query.orderType = orderType
	query.status = status

	return query, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) OrderType() kernel.OrderType {
	return q.orderType
}

func (q ListOrdersQuery) Status() string {
	return q.status
}

func parseStatus(orderType kernel.OrderType, raw string) error {
	var err error
	switch orderType {
	case kernel.CustomerOrderType:
		_, err = customerorder.ParseStatus(raw)
	case kernel.WarehouseOrderType:
		_, err = warehouseorder.ParseStatus(raw)
	case kernel.ProductionOrderType:
		_, err = productionorder.ParseStatus(raw)
	case kernel.ControlOrderType:
		_, err = controlorder.ParseStatus(raw)
	case kernel.WorkstationOrderType:
		_, err = workstationorder.ParseStatus(raw)
	default:
		_, err = supplyorder.ParseStatus(raw)
	}
	return err
}
