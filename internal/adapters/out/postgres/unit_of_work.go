// Package postgres provides the GORM implementation of the unit of work.
//
// A unit of work wraps one database transaction. Repositories obtained after Begin run
// inside it; repositories obtained without Begin use the plain connection and suit
// read-only queries.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.ControlOrderRepository().Update(ctx, control); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Updates are guarded by the version column, so two units of work racing on the same
// order cannot both commit: the loser gets errs.ErrConcurrentModification.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"factory/internal/adapters/out/postgres/orderrepo"
	"factory/internal/core/ports"
)

type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling it again on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) CustomerOrderRepository() ports.CustomerOrderRepository {
	return orderrepo.NewGormCustomerOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) WarehouseOrderRepository() ports.WarehouseOrderRepository {
	return orderrepo.NewGormWarehouseOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ProductionOrderRepository() ports.ProductionOrderRepository {
	return orderrepo.NewGormProductionOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ControlOrderRepository() ports.ControlOrderRepository {
	return orderrepo.NewGormControlOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) WorkstationOrderRepository() ports.WorkstationOrderRepository {
	return orderrepo.NewGormWorkstationOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) SupplyOrderRepository() ports.SupplyOrderRepository {
	return orderrepo.NewGormSupplyOrderRepository(uow.conn())
}
