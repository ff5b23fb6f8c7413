package queries

import (
	"errors"
	"fmt"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/pkg/errs"
	"factory/internal/pkg/guard"
)

var ErrGetStockLevelQueryIsNotConstructed = errors.New(
	"GetStockLevelQuery must be created via NewGetStockLevelQuery constructor",
)

// GetStockLevelQuery asks the inventory ledger for the quantity of one item on hand at
// a workstation.
type GetStockLevelQuery struct { //nolint:recvcheck //using for validation
	workstationID plant.WorkstationID
	itemType      kernel.ItemType
	itemID        kernel.ID

	guard guard.ConstructorGuard
}

func NewGetStockLevelQuery(
	workstationID plant.WorkstationID,
	itemType kernel.ItemType,
	itemID kernel.ID,
) (GetStockLevelQuery, error) {
	query := GetStockLevelQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		query.setWorkstationID(workstationID),
		query.setItem(itemType, itemID),
	); err != nil {
		return GetStockLevelQuery{}, err
	}

	return query, nil
}

func (q GetStockLevelQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLevelQueryIsNotConstructed)
}

func (q GetStockLevelQuery) WorkstationID() plant.WorkstationID {
	return q.workstationID
}

func (q GetStockLevelQuery) ItemType() kernel.ItemType {
	return q.itemType
}

func (q GetStockLevelQuery) ItemID() kernel.ID {
	return q.itemID
}

func (q *GetStockLevelQuery) setWorkstationID(workstationID plant.WorkstationID) error {
	if workstationID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("workstation id", fmt.Errorf("%d is not positive", workstationID))
	}
	q.workstationID = workstationID
	return nil
}

func (q *GetStockLevelQuery) setItem(itemType kernel.ItemType, itemID kernel.ID) error {
	if err := (kernel.Item{Type: itemType, ID: itemID, Quantity: 1}).Validate(); err != nil {
		return err
	}
	q.itemType = itemType
	q.itemID = itemID
	return nil
}
