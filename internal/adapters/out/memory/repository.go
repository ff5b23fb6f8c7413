package memory

import (
	"context"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

type aggregate[S any] interface {
	ID() kernel.ID
	Version() int64
	IncrementVersion()
	Validate() error
	State() S
}

// repo implements the shared repository operations over one table. Reads see the
// writes staged by the owning unit of work before the committed rows.
type repo[A aggregate[S], S any] struct {
	uow     *UnitOfWork
	table   *table[S]
	restore func(S) (A, error)
}

func newRepo[A aggregate[S], S any](uow *UnitOfWork, t *table[S], restore func(S) (A, error)) repo[A, S] {
	return repo[A, S]{uow: uow, table: t, restore: restore}
}

func (r repo[A, S]) NextID(ctx context.Context) (kernel.ID, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.uow.store.nextID(r.table.name), nil
}

func (r repo[A, S]) Add(ctx context.Context, a A) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return err
	}
	state := a.State()
	return r.write(a.ID(), row[S]{state: state, version: a.Version()}, 0, true)
}

func (r repo[A, S]) Update(ctx context.Context, a A) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return err
	}
	state := a.State()
	next := a.Version() + 1
	r.table.setVersion(&state, next)
	if err := r.write(a.ID(), row[S]{state: state, version: next}, a.Version(), false); err != nil {
		return err
	}
	a.IncrementVersion()
	return nil
}

func (r repo[A, S]) Get(ctx context.Context, id kernel.ID) (A, error) {
	var zero A
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	current, ok := r.lookup(id)
	if !ok {
		return zero, errs.NewObjectNotFoundError(r.table.entity, id)
	}
	return r.restore(current.state)
}

func (r repo[A, S]) write(id kernel.ID, next row[S], expected int64, insert bool) error {
	if r.uow.tx == nil {
		store := r.uow.store
		store.mu.Lock()
		defer store.mu.Unlock()
		p := &pending[S]{table: r.table, changes: map[kernel.ID]change[S]{
			id: {row: next, expected: expected, insert: insert},
		}}
		if err := p.check(); err != nil {
			return err
		}
		p.apply()
		return nil
	}

	p := pendingFor(r.uow, r.table)
	if previous, ok := p.changes[id]; ok {
		if insert {
			return errs.NewValueIsInvalidErrorWithCause(r.table.entity, errDuplicateID)
		}
		if previous.row.version != expected {
			return errs.NewConcurrentModificationError(r.table.entity, id, expected)
		}
		p.changes[id] = change[S]{row: next, expected: previous.expected, insert: previous.insert}
		return nil
	}

	if !insert {
		r.uow.store.mu.RLock()
		current, exists := r.table.rows[id]
		r.uow.store.mu.RUnlock()
		if !exists {
			return errs.NewObjectNotFoundError(r.table.entity, id)
		}
		if current.version != expected {
			return errs.NewConcurrentModificationError(r.table.entity, id, expected)
		}
	}
	p.changes[id] = change[S]{row: next, expected: expected, insert: insert}
	return nil
}

func (r repo[A, S]) lookup(id kernel.ID) (row[S], bool) {
	if r.uow.tx != nil {
		if p, ok := r.uow.tx[r.table.name]; ok {
			if c, ok := p.(*pending[S]).changes[id]; ok {
				return c.row, true
			}
		}
	}
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	current, ok := r.table.rows[id]
	return current, ok
}

// snapshot merges committed rows with staged writes.
func (r repo[A, S]) snapshot() map[kernel.ID]row[S] {
	r.uow.store.mu.RLock()
	rows := make(map[kernel.ID]row[S], len(r.table.rows))
	for id, current := range r.table.rows {
		rows[id] = current
	}
	r.uow.store.mu.RUnlock()

	if r.uow.tx != nil {
		if p, ok := r.uow.tx[r.table.name]; ok {
			for id, c := range p.(*pending[S]).changes {
				rows[id] = c.row
			}
		}
	}
	return rows
}

func (r repo[A, S]) find(ctx context.Context, match func(S) bool) ([]A, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := r.snapshot()
	result := make([]A, 0)
	for _, id := range sortedIDs(rows) {
		if !match(rows[id].state) {
			continue
		}
		a, err := r.restore(rows[id].state)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

func (r repo[A, S]) count(ctx context.Context, match func(S) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := 0
	for _, current := range r.snapshot() {
		if match(current.state) {
			n++
		}
	}
	return n, nil
}
