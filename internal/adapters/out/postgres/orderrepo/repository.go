package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"factory/internal/core/domain/model/kernel"
	"factory/internal/pkg/errs"
)

// Postgres error codes the repositories translate.
const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
)

type aggregate[S any] interface {
	ID() kernel.ID
	Version() int64
	IncrementVersion()
	Validate() error
	State() S
}

// repo implements the operations every order table shares. D is the DTO stored in
// table; version is the column used for optimistic locking.
type repo[A aggregate[S], S any, D any] struct {
	db       *gorm.DB
	table    string
	entity   string
	toDTO    func(S, int64) D
	toDomain func(D) (A, error)
}

func (r repo[A, S, D]) NextID(ctx context.Context) (kernel.ID, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval(?::regclass)", r.table+"_id_seq").Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return kernel.ID(id), nil
}

func (r repo[A, S, D]) Add(ctx context.Context, aggregate A) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := r.toDTO(aggregate.State(), aggregate.Version())
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return r.translate(aggregate.ID(), aggregate.Version(), err)
	}
	return nil
}

// Update writes every column, guarded by the version the aggregate was loaded at.
func (r repo[A, S, D]) Update(ctx context.Context, aggregate A) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	expected := aggregate.Version()
	dto := r.toDTO(aggregate.State(), expected+1)
	result := r.db.WithContext(ctx).
		Model(new(D)).
		Where("id = ? AND version = ?", int64(aggregate.ID()), expected).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return r.translate(aggregate.ID(), expected, result.Error)
	}

	if result.RowsAffected == 0 {
		var exists int64
		err := r.db.WithContext(ctx).Model(new(D)).Where("id = ?", int64(aggregate.ID())).Count(&exists).Error
		if err != nil {
			return err
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError(r.entity, aggregate.ID())
		}
		return errs.NewConcurrentModificationError(r.entity, aggregate.ID(), expected)
	}

	aggregate.IncrementVersion()
	return nil
}

func (r repo[A, S, D]) Get(ctx context.Context, id kernel.ID) (A, error) {
	var zero A
	if err := id.Validate(); err != nil {
		return zero, err
	}

	var dto D
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, errs.NewObjectNotFoundError(r.entity, id)
		}
		return zero, err
	}

	return r.toDomain(dto)
}

func (r repo[A, S, D]) find(ctx context.Context, query string, args ...any) ([]A, error) {
	var dtos []D
	if err := r.db.WithContext(ctx).Where(query, args...).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]A, 0, len(dtos))
	for _, dto := range dtos {
		a, err := r.toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

func (r repo[A, S, D]) count(ctx context.Context, query string, args ...any) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(D)).Where(query, args...).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r repo[A, S, D]) translate(id kernel.ID, version int64, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause(r.entity, fmt.Errorf("duplicate %s: %w", pgErr.ConstraintName, err))
	case serializationFailure:
		return errs.NewConcurrentModificationError(r.entity, id, version)
	default:
		return err
	}
}
