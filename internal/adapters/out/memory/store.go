package memory

import (
	"errors"
	"sort"
	"sync"

	"factory/internal/core/domain/model/controlorder"
	"factory/internal/core/domain/model/customerorder"
	"factory/internal/core/domain/model/kernel"
	"factory/internal/core/domain/model/productionorder"
	"factory/internal/core/domain/model/supplyorder"
	"factory/internal/core/domain/model/warehouseorder"
	"factory/internal/core/domain/model/workstationorder"
	"factory/internal/pkg/errs"
)

var (
	errNoActiveTransaction = errors.New("no active transaction")
	errDuplicateID         = errors.New("duplicate id")
)

type row[S any] struct {
	state   S
	version int64
}

type table[S any] struct {
	name       string
	entity     string
	rows       map[kernel.ID]row[S]
	setVersion func(*S, int64)
}

func newTable[S any](name, entity string, setVersion func(*S, int64)) *table[S] {
	return &table[S]{
		name:       name,
		entity:     entity,
		rows:       make(map[kernel.ID]row[S]),
		setVersion: setVersion,
	}
}

// Store holds the committed state of all orders.
type Store struct {
	mu        sync.RWMutex
	sequences map[string]kernel.ID

	customers    *table[customerorder.State]
	warehouses   *table[warehouseorder.State]
	productions  *table[productionorder.State]
	controls     *table[controlorder.State]
	workstations *table[workstationorder.State]
	supplies     *table[supplyorder.State]
}

func NewStore() *Store {
	return &Store{
		sequences: make(map[string]kernel.ID),
		customers: newTable("customer_orders", "customer order",
			func(s *customerorder.State, v int64) { s.Version = v }),
		warehouses: newTable("warehouse_orders", "warehouse order",
			func(s *warehouseorder.State, v int64) { s.Version = v }),
		productions: newTable("production_orders", "production order",
			func(s *productionorder.State, v int64) { s.Version = v }),
		controls: newTable("control_orders", "control order",
			func(s *controlorder.State, v int64) { s.Version = v }),
		workstations: newTable("workstation_orders", "workstation order",
			func(s *workstationorder.State, v int64) { s.Version = v }),
		supplies: newTable("supply_orders", "supply order",
			func(s *supplyorder.State, v int64) { s.Version = v }),
	}
}

func (s *Store) nextID(name string) kernel.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequences[name]++
	return s.sequences[name]
}

// change is a staged write of a transaction.
type change[S any] struct {
	row      row[S]
	expected int64
	insert   bool
}

type pending[S any] struct {
	table   *table[S]
	changes map[kernel.ID]change[S]
}

func (p *pending[S]) check() error {
	for id, c := range p.changes {
		current, exists := p.table.rows[id]
		if c.insert {
			if exists {
				return errs.NewValueIsInvalidErrorWithCause(p.table.entity, errDuplicateID)
			}
			continue
		}
		if !exists {
			return errs.NewObjectNotFoundError(p.table.entity, id)
		}
		if current.version != c.expected {
			return errs.NewConcurrentModificationError(p.table.entity, id, c.expected)
		}
	}
	return nil
}

func (p *pending[S]) apply() {
	for id, c := range p.changes {
		p.table.rows[id] = c.row
	}
}

type staged interface {
	check() error
	apply()
}

func sortedIDs[S any](rows map[kernel.ID]row[S]) []kernel.ID {
	ids := make([]kernel.ID, 0, len(rows))
	for id := range rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
