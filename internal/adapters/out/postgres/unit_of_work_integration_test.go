package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"

	postgres_adapter "factory/internal/adapters/out/postgres"
	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
)

// UnitOfWorkIntegrationTestSuite runs the order store against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(dsn)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db, zap.NewNop()))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE customer_orders, warehouse_orders, production_orders,
		control_orders, workstation_orders, supply_orders`).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newCustomerOrder(uow ports.UnitOfWork) *customerorder.CustomerOrder {
	ctx := context.Background()
	repo := uow.CustomerOrderRepository()
	id, err := repo.NextID(ctx)
	suite.Require().NoError(err)

	line, err := customerorder.NewLine(kernel.Product, 1, 2)
	suite.Require().NoError(err)
	order, err := customerorder.NewCustomerOrder(id, []customerorder.Line{line})
	suite.Require().NoError(err)
	return order
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAndRoundTrips() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	order := suite.newCustomerOrder(uow)
	suite.Require().NoError(uow.CustomerOrderRepository().Add(ctx, order))
	suite.Require().NoError(uow.Commit(ctx))

	stored, err := suite.factory.Create().CustomerOrderRepository().Get(ctx, order.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Number(), stored.Number())
	suite.Equal(order.Lines(), stored.Lines())
	suite.Equal(customerorder.Pending, stored.Status())
	suite.Equal(int64(0), stored.Version())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	order := suite.newCustomerOrder(uow)
	suite.Require().NoError(uow.CustomerOrderRepository().Add(ctx, order))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().CustomerOrderRepository().Get(ctx, order.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	suite.Require().ErrorIs(suite.factory.Create().Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdate_StaleVersionIsRejected() {
	ctx := context.Background()
	seed := suite.factory.Create()
	order := suite.newCustomerOrder(seed)
	suite.Require().NoError(seed.CustomerOrderRepository().Add(ctx, order))

	first, err := suite.factory.Create().CustomerOrderRepository().Get(ctx, order.ID())
	suite.Require().NoError(err)
	second, err := suite.factory.Create().CustomerOrderRepository().Get(ctx, order.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Confirm())
	suite.Require().NoError(suite.factory.Create().CustomerOrderRepository().Update(ctx, first))
	suite.Equal(int64(1), first.Version())

	suite.Require().NoError(second.Cancel())
	err = suite.factory.Create().CustomerOrderRepository().Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrConcurrentModification)

	stored, err := suite.factory.Create().CustomerOrderRepository().Get(ctx, order.ID())
	suite.Require().NoError(err)
	suite.Equal(customerorder.Confirmed, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdate_UnknownOrder() {
	ctx := context.Background()
	order := suite.newCustomerOrder(suite.factory.Create())

	err := suite.factory.Create().CustomerOrderRepository().Update(ctx, order)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAdd_DuplicateNumberIsInvalid() {
	ctx := context.Background()
	uow := suite.factory.Create()
	order := suite.newCustomerOrder(uow)
	suite.Require().NoError(uow.CustomerOrderRepository().Add(ctx, order))

	err := uow.CustomerOrderRepository().Add(ctx, order)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestHierarchyQueries() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	customer := suite.newCustomerOrder(uow)
	suite.Require().NoError(uow.CustomerOrderRepository().Add(ctx, customer))

	productionID, err := uow.ProductionOrderRepository().NextID(ctx)
	suite.Require().NoError(err)
	production, err := productionorder.NewForCustomerOrder(productionID, customer.ID(), []productionorder.Item{
		{ItemType: kernel.Module, ItemID: 11, Quantity: 5, WorkstationType: productionorder.Assembly},
	}, productionorder.High, time.Now().Add(time.Hour))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.ProductionOrderRepository().Add(ctx, production))

	start := time.Now().UTC().Truncate(time.Second)
	var controls []*controlorder.ControlOrder
	for _, category := range []plant.Category{plant.Production, plant.Assembly} {
		id, err := uow.ControlOrderRepository().NextID(ctx)
		suite.Require().NoError(err)
		control, err := controlorder.NewControlOrder(id, production.ID(), 4, category, []controlorder.Step{
			{ItemID: 11, ItemName: "gear module", Quantity: 5, StartTime: start, EndTime: start.Add(time.Hour)},
		})
		suite.Require().NoError(err)
		suite.Require().NoError(uow.ControlOrderRepository().Add(ctx, control))
		controls = append(controls, control)
	}

	for range 2 {
		id, err := uow.WorkstationOrderRepository().NextID(ctx)
		suite.Require().NoError(err)
		order, err := workstationorder.NewWorkstationOrder(id, plant.GearAssembly, 4,
			kernel.Item{Type: kernel.Module, ID: 11, Quantity: 5},
			[]kernel.Item{{Type: kernel.Part, ID: 21, Quantity: 10}},
			workstationorder.References{
				ControlOrderID:    controls[1].ID().Ptr(),
				ProductionOrderID: production.ID().Ptr(),
			})
		suite.Require().NoError(err)
		suite.Require().NoError(uow.WorkstationOrderRepository().Add(ctx, order))
	}
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	productions, err := reader.ProductionOrderRepository().FindByCustomerOrderID(ctx, customer.ID())
	suite.Require().NoError(err)
	suite.Require().Len(productions, 1)
	suite.Equal(productionorder.High, productions[0].Priority())
	suite.Equal(production.Items(), productions[0].Items())

	total, err := reader.ControlOrderRepository().CountByProductionOrderID(ctx, production.ID())
	suite.Require().NoError(err)
	suite.Equal(2, total)

	pending, err := reader.ControlOrderRepository().
		CountByProductionOrderIDAndStatus(ctx, production.ID(), controlorder.Pending)
	suite.Require().NoError(err)
	suite.Equal(2, pending)

	stored, err := reader.ControlOrderRepository().Get(ctx, controls[0].ID())
	suite.Require().NoError(err)
	suite.Require().Len(stored.Steps(), 1)
	suite.True(start.Equal(stored.Steps()[0].StartTime))

	gears, err := reader.WorkstationOrderRepository().CountByControlOrderIDAndKind(ctx, controls[1].ID(), plant.GearAssembly)
	suite.Require().NoError(err)
	suite.Equal(2, gears)

	children, err := reader.WorkstationOrderRepository().FindByControlOrderID(ctx, controls[1].ID())
	suite.Require().NoError(err)
	suite.Require().Len(children, 2)
	suite.Less(children[0].ID(), children[1].ID())
	suite.Equal(workstationorder.Pending, children[0].Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestNextID_IsUniquePerTable() {
	ctx := context.Background()
	repo := suite.factory.Create().SupplyOrderRepository()

	first, err := repo.NextID(ctx)
	suite.Require().NoError(err)
	second, err := repo.NextID(ctx)
	suite.Require().NoError(err)
	suite.NotEqual(first, second)
}
