package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"factory/internal/adapters/out/memory"
	"factory/internal/core/application/notification"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/plant"
	"factory/internal/core/ports"
)

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Credit(
	ctx context.Context,
	report *notification.Report,
	workstationID plant.WorkstationID,
	item kernel.Item,
	reason ports.StockReason,
	note string,
) {
	m.Called(ctx, report, workstationID, item, reason, note)
}

func (m *MockNotifier) Debit(
	ctx context.Context,
	report *notification.Report,
	workstationID plant.WorkstationID,
	item kernel.Item,
	reason ports.StockReason,
	note string,
) {
	m.Called(ctx, report, workstationID, item, reason, note)
}

func (m *MockNotifier) Publish(ctx context.Context, report *notification.Report, event ports.OrderEvent) {
	m.Called(ctx, report, event)
}

// expectPublish accepts any event and hands it to capture.
func (m *MockNotifier) expectPublish(capture func(ports.OrderEvent)) {
	m.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			if capture != nil {
				capture(args.Get(2).(ports.OrderEvent))
			}
		}).
		Return()
}

type fixture struct {
	store    *memory.Store
	factory  ports.UnitOfWorkFactory
	notifier *MockNotifier
	logger   *zap.Logger
	cfg      plant.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:    store,
		factory:  memory.NewUnitOfWorkFactory(store),
		notifier: &MockNotifier{},
		logger:   zap.NewNop(),
		cfg:      plant.MustDefault(),
	}
}

// seed runs fn in a committed unit of work.
func (f *fixture) seed(t *testing.T, fn func(ctx context.Context, uow ports.UnitOfWork) error) {
	t.Helper()
	ctx := t.Context()
	uow := f.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, fn(ctx, uow))
	require.NoError(t, uow.Commit(ctx))
}

// read runs fn in a unit of work that is rolled back afterwards.
func (f *fixture) read(t *testing.T, fn func(ctx context.Context, uow ports.UnitOfWork)) {
	t.Helper()
	ctx := t.Context()
	uow := f.factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	fn(ctx, uow)
}
