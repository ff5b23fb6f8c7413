package cache

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/ports"
)

var _ ports.Masterdata = (*Masterdata)(nil)

type Options struct {
	MemoryTTL time.Duration
	SharedTTL time.Duration
}

// Masterdata answers lookups from memory, then the shared store, then the wrapped
// source. Shared store failures are logged and skipped. Errors of the source are
// never cached.
type Masterdata struct {
	source ports.Masterdata
	memory *gocache.Cache
	shared Store
	opts   Options
	logger *zap.Logger
}

// NewMasterdata wraps source. shared may be nil to run with the memory tier only.
func NewMasterdata(source ports.Masterdata, shared Store, opts Options, logger *zap.Logger) *Masterdata {
	return &Masterdata{
		source: source,
		memory: gocache.New(opts.MemoryTTL, 2*opts.MemoryTTL),
		shared: shared,
		opts:   opts,
		logger: logger.With(zap.String("component", "masterdata-cache")),
	}
}

func (m *Masterdata) Lookup(ctx context.Context, kind ports.CatalogKind, id kernel.ID) (ports.CatalogEntry, error) {
	key := fmt.Sprintf("%s:%d", kind, id)

	if cached, ok := m.memory.Get(key); ok {
		if entry, ok := cached.(ports.CatalogEntry); ok {
			return entry, nil
		}
	}

	if entry, ok := m.fromShared(ctx, key); ok {
		m.memory.SetDefault(key, entry)
		return entry, nil
	}

	entry, err := m.source.Lookup(ctx, kind, id)
	if err != nil {
		return ports.CatalogEntry{}, err
	}

	m.memory.SetDefault(key, entry)
	m.toShared(ctx, key, entry)
	return entry, nil
}

func (m *Masterdata) fromShared(ctx context.Context, key string) (ports.CatalogEntry, bool) {
	if m.shared == nil {
		return ports.CatalogEntry{}, false
	}

	raw, found, err := m.shared.Get(ctx, key)
	if err != nil {
		m.logger.Warn("shared cache read failed", zap.String("key", key), zap.Error(err))
		return ports.CatalogEntry{}, false
	}
	if !found {
		return ports.CatalogEntry{}, false
	}

	var entry ports.CatalogEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		m.logger.Warn("dropping undecodable cache entry", zap.String("key", key), zap.Error(err))
		return ports.CatalogEntry{}, false
	}
	return entry, true
}

func (m *Masterdata) toShared(ctx context.Context, key string, entry ports.CatalogEntry) {
	if m.shared == nil {
		return
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		m.logger.Warn("cannot encode cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := m.shared.Set(ctx, key, raw, m.opts.SharedTTL); err != nil {
		m.logger.Warn("shared cache write failed", zap.String("key", key), zap.Error(err))
	}
}
