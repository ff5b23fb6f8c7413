package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"factory/internal/adapters/out/cache"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/ports"
	"factory/internal/pkg/errs"
)

type MockMasterdata struct {
	mock.Mock
}

func (m *MockMasterdata) Lookup(ctx context.Context, kind ports.CatalogKind, id kernel.ID) (ports.CatalogEntry, error) {
	args := m.Called(ctx, kind, id)
	return args.Get(0).(ports.CatalogEntry), args.Error(1)
}

type mapStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	err     error
}

func newMapStore() *mapStore {
	return &mapStore{entries: map[string][]byte{}}
}

func (s *mapStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, false, s.err
	}
	value, ok := s.entries[key]
	return value, ok, nil
}

func (s *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries[key] = value
	return nil
}

var (
	opts  = cache.Options{MemoryTTL: time.Minute, SharedTTL: time.Hour}
	robot = ports.CatalogEntry{
		Kind: ports.CatalogProduct,
		ID:   1,
		Name: "standard robot",
		Components: []kernel.Item{
			{Type: kernel.Module, ID: 11, Quantity: 1},
			{Type: kernel.Module, ID: 12, Quantity: 2},
		},
	}
)

func TestMasterdata_MemoryTierServesRepeatedLookups(t *testing.T) {
	source := new(MockMasterdata)
	source.On("Lookup", mock.Anything, ports.CatalogProduct, kernel.ID(1)).Return(robot, nil).Once()

	cached := cache.NewMasterdata(source, nil, opts, zap.NewNop())
	for range 3 {
		entry, err := cached.Lookup(t.Context(), ports.CatalogProduct, 1)
		require.NoError(t, err)
		assert.Equal(t, robot, entry)
	}
	source.AssertExpectations(t)
}

func TestMasterdata_SharedTierIsFilledAndRead(t *testing.T) {
	store := newMapStore()

	source := new(MockMasterdata)
	source.On("Lookup", mock.Anything, ports.CatalogProduct, kernel.ID(1)).Return(robot, nil).Once()
	_, err := cache.NewMasterdata(source, store, opts, zap.NewNop()).Lookup(t.Context(), ports.CatalogProduct, 1)
	require.NoError(t, err)
	assert.Contains(t, store.entries, "products:1")

	// a second process with a cold memory tier
	other := new(MockMasterdata)
	entry, err := cache.NewMasterdata(other, store, opts, zap.NewNop()).Lookup(t.Context(), ports.CatalogProduct, 1)
	require.NoError(t, err)
	assert.Equal(t, robot, entry)
	other.AssertNotCalled(t, "Lookup", mock.Anything, mock.Anything, mock.Anything)
}

func TestMasterdata_SharedTierFailureFallsBackToSource(t *testing.T) {
	store := newMapStore()
	store.err = assert.AnError

	source := new(MockMasterdata)
	source.On("Lookup", mock.Anything, ports.CatalogProduct, kernel.ID(1)).Return(robot, nil).Once()

	entry, err := cache.NewMasterdata(source, store, opts, zap.NewNop()).Lookup(t.Context(), ports.CatalogProduct, 1)
	require.NoError(t, err)
	assert.Equal(t, robot, entry)
}

func TestMasterdata_UnreachableRedisFallsBackToSource(t *testing.T) {
	client := cache.NewRedisClient("127.0.0.1:1", "", 0, 50*time.Millisecond)
	t.Cleanup(func() { _ = client.Close() })
	store := cache.NewRedisStore(client, "factory")
	require.Error(t, store.Ping(t.Context()))

	source := new(MockMasterdata)
	source.On("Lookup", mock.Anything, ports.CatalogProduct, kernel.ID(1)).Return(robot, nil).Once()

	entry, err := cache.NewMasterdata(source, store, opts, zap.NewNop()).Lookup(t.Context(), ports.CatalogProduct, 1)
	require.NoError(t, err)
	assert.Equal(t, robot, entry)
}

func TestMasterdata_ErrorsAreNotCached(t *testing.T) {
	store := newMapStore()
	notFound := errs.NewObjectNotFoundError("products", kernel.ID(99))

	source := new(MockMasterdata)
	source.On("Lookup", mock.Anything, ports.CatalogProduct, kernel.ID(99)).
		Return(ports.CatalogEntry{}, notFound).Twice()

	cached := cache.NewMasterdata(source, store, opts, zap.NewNop())
	for range 2 {
		_, err := cached.Lookup(t.Context(), ports.CatalogProduct, 99)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	}
	assert.Empty(t, store.entries)
	source.AssertExpectations(t)
}
