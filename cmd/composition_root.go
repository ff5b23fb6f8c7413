package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadapter "factory/internal/adapters/in/http"
	"factory/internal/adapters/out/cache"
	"factory/internal/adapters/out/events"
	"factory/internal/adapters/out/memory"
	"factory/internal/adapters/out/postgres"
	"factory/internal/adapters/out/rest"
	"factory/internal/core/application/notification"
	"factory/internal/core/application/orchestration"
	"factory/internal/core/application/usecases/commands"
	"factory/internal/core/application/usecases/queries"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
	"factory/internal/jobs"
)

const serviceName = "factory"

// CompositionRoot owns every long lived dependency of the process.
type CompositionRoot struct {
	cfg    Config
	plant  plant.Config
	logger *zap.Logger

	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	producer   sarama.SyncProducer

	ledger     *rest.InventoryClient
	scheduler  *rest.SchedulingClient
	masterdata *cache.Masterdata
	publisher  ports.EventPublisher
	notifier   *notification.Notifier

	router      *orchestration.ScenarioRouter
	coordinator *orchestration.DispatchCoordinator
	propagator  *orchestration.CompletionPropagator
}

func NewCompositionRoot(ctx context.Context, cfg Config, logger *zap.Logger) (*CompositionRoot, error) {
	plantConfig, err := cfg.PlantConfig()
	if err != nil {
		return nil, fmt.Errorf("plant config: %w", err)
	}

	c := &CompositionRoot{cfg: cfg, plant: plantConfig, logger: logger}

	if err := c.initStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	httpClient := rest.NewHTTPClient(cfg.Services.Timeout)
	c.ledger = rest.NewInventoryClient(cfg.Services.InventoryURL, httpClient, logger)
	c.scheduler = rest.NewSchedulingClient(cfg.Services.SchedulingURL, httpClient, logger)

	var shared cache.Store
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Services.Timeout)
		store := cache.NewRedisStore(client, serviceName)
		if err := store.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, masterdata is cached in memory only", zap.Error(err))
		} else {
			shared = store
		}
	}
	c.masterdata = cache.NewMasterdata(
		rest.NewMasterdataClient(cfg.Services.MasterdataURL, httpClient, logger),
		shared,
		cache.Options{MemoryTTL: cfg.Masterdata.MemoryTTL, SharedTTL: cfg.Masterdata.SharedTTL},
		logger,
	)

	c.notifier = notification.NewNotifier(c.ledger, c.publisher, cfg.Services.Timeout, logger)
	c.router = orchestration.NewScenarioRouter(c.uowFactory, plantConfig, c.masterdata, c.ledger, c.notifier, logger)
	c.coordinator = orchestration.NewDispatchCoordinator(
		c.uowFactory, plantConfig, c.scheduler, c.masterdata, c.ledger, c.notifier, logger,
	)
	c.propagator = orchestration.NewCompletionPropagator(c.uowFactory, c.coordinator, c.notifier, logger)

	return c, nil
}

func (c *CompositionRoot) initStore(ctx context.Context) error {
	if c.cfg.Store == StoreMemory {
		c.logger.Warn("using the in-memory store, orders are lost on restart")
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
		return nil
	}

	db, err := postgres.Open(c.cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	c.gormDB = db

	if c.cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, db, c.logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	return nil
}

func (c *CompositionRoot) initPublisher() error {
	brokers := c.cfg.Kafka.BrokerList()
	if len(brokers) == 0 {
		c.publisher = events.NewLogPublisher(c.logger)
		return nil
	}

	producer, err := events.NewSyncProducer(brokers, events.NewProducerConfig(c.cfg.Kafka.ClientID, c.cfg.Services.Timeout))
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	c.producer = producer
	c.publisher = events.NewKafkaPublisher(producer, c.cfg.Kafka.Topic, c.logger)
	return nil
}

func (c *CompositionRoot) Handlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateCustomerOrder:  commands.NewCreateCustomerOrderCommandHandler(c.uowFactory, c.notifier, c.logger),
		ProcessCustomerOrder: commands.NewProcessCustomerOrderCommandHandler(c.router),
		Transition:           commands.NewTransitionCommandHandler(c.uowFactory, c.notifier, c.logger),

		ConfirmWarehouseOrder:   commands.NewConfirmWarehouseOrderCommandHandler(c.router),
		RequestProduction:       commands.NewRequestProductionCommandHandler(c.router),
		FulfillWarehouseOrder:   commands.NewFulfillWarehouseOrderCommandHandler(c.coordinator),
		OverrideWarehouseStatus: commands.NewOverrideWarehouseOrderStatusCommandHandler(c.uowFactory, c.notifier, c.logger),

		ScheduleProductionOrder:  commands.NewScheduleProductionOrderCommandHandler(c.coordinator),
		SubmitProductionOrder:    commands.NewSubmitProductionOrderCompletionCommandHandler(c.coordinator),
		CompleteProductionOrder:  commands.NewCompleteProductionOrderCommandHandler(c.propagator),
		RequestControlSupply:     commands.NewRequestControlOrderSupplyCommandHandler(c.coordinator),
		DispatchControlOrder:     commands.NewDispatchControlOrderCommandHandler(c.coordinator),
		StartWorkstationOrder:    commands.NewStartWorkstationOrderCommandHandler(c.uowFactory, c.notifier, c.logger),
		CompleteWorkstationOrder: commands.NewCompleteWorkstationOrderCommandHandler(c.propagator),
		FulfillSupplyOrder:       commands.NewFulfillSupplyOrderCommandHandler(c.uowFactory, c.plant, c.notifier, c.logger),

		GetOrder:      queries.NewGetOrderQueryHandler(c.uowFactory),
		ListOrders:    queries.NewListOrdersQueryHandler(c.uowFactory),
		GetProgress:   queries.NewGetProgressQueryHandler(orchestration.NewProgressReader(c.uowFactory)),
		GetStockLevel: queries.NewGetStockLevelQueryHandler(c.ledger),
	}
}

func (c *CompositionRoot) NewServer() *httpadapter.Server {
	return httpadapter.NewServer(c.Handlers(), c.logger)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.uowFactory, c.propagator, c.cfg.Jobs.Schedule, c.logger)
}

// Close releases the producer and the database pool.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.producer != nil {
		errList = append(errList, c.producer.Close())
	}
	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err == nil {
			errList = append(errList, sqlDB.Close())
		}
	}
	return errors.Join(errList...)
}
