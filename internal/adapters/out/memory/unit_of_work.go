package memory

import (
	"context"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
)

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork buffers writes until Commit, which checks every staged version against the
// store and applies all of them or none. Without Begin, writes are applied immediately.
type UnitOfWork struct {
	store *Store
	tx    map[string]staged
	order []string
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if u.tx != nil {
		return nil
	}
	u.tx = make(map[string]staged)
	u.order = nil
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return errNoActiveTransaction
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	defer func() {
		u.tx = nil
		u.order = nil
	}()

	for _, name := range u.order {
		if err := u.tx[name].check(); err != nil {
			return err
		}
	}
	for _, name := range u.order {
		u.tx[name].apply()
	}
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return errNoActiveTransaction
	}
	u.tx = nil
	u.order = nil
	return nil
}

func (u *UnitOfWork) CustomerOrderRepository() ports.CustomerOrderRepository {
	return &CustomerOrderRepository{
		repo: newRepo(u, u.store.customers, customerorder.Restore),
	}
}

func (u *UnitOfWork) WarehouseOrderRepository() ports.WarehouseOrderRepository {
	return &WarehouseOrderRepository{
		repo: newRepo(u, u.store.warehouses, warehouseorder.Restore),
	}
}

func (u *UnitOfWork) ProductionOrderRepository() ports.ProductionOrderRepository {
	return &ProductionOrderRepository{
		repo: newRepo(u, u.store.productions, productionorder.Restore),
	}
}

func (u *UnitOfWork) ControlOrderRepository() ports.ControlOrderRepository {
	return &ControlOrderRepository{
		repo: newRepo(u, u.store.controls, controlorder.Restore),
	}
}

func (u *UnitOfWork) WorkstationOrderRepository() ports.WorkstationOrderRepository {
	return &WorkstationOrderRepository{
		repo: newRepo(u, u.store.workstations, workstationorder.Restore),
	}
}

func (u *UnitOfWork) SupplyOrderRepository() ports.SupplyOrderRepository {
	return &SupplyOrderRepository{
		repo: newRepo(u, u.store.supplies, supplyorder.Restore),
	}
}

// pendingFor returns the staged writes of t in the current transaction, creating them.
func pendingFor[S any](u *UnitOfWork, t *table[S]) *pending[S] {
	if existing, ok := u.tx[t.name]; ok {
		return existing.(*pending[S])
	}
	p := &pending[S]{table: t, changes: make(map[kernel.ID]change[S])}
	u.tx[t.name] = p
	u.order = append(u.order, t.name)
	return p
}
