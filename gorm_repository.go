package pagewindow

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// GormRepository is a Repository over a gorm model. Filters are translated into WHERE
// clauses, ids are plucked from the id column and records are fetched back with
// "<id column> IN ?" in the requested order.
type GormRepository[ID comparable, T any] struct {
	db       *gorm.DB
	idColumn string
	idOf     func(T) ID
}

// NewGormRepository builds a repository over the model T. idOf extracts the identifier of
// a fetched record, it is used to restore the requested order.
func NewGormRepository[ID comparable, T any](db *gorm.DB, idOf func(T) ID) *GormRepository[ID, T] {
	return &GormRepository[ID, T]{
		db:       db,
		idColumn: DefaultIDColumn,
		idOf:     idOf,
	}
}

// WithIDColumn sets the column the ids are plucked from and fetched by.
func (r *GormRepository[ID, T]) WithIDColumn(column string) *GormRepository[ID, T] {
	r.idColumn = column

	return r
}

func (r *GormRepository[ID, T]) scope(ctx context.Context, filter Filter) (*gorm.DB, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	if !isSafeColumnName(r.idColumn) {
		return nil, fmt.Errorf("%w: id column name contains forbidden symbols '%s'", ErrInvalidFilter, r.idColumn)
	}

	db := r.db.WithContext(ctx).Model(new(T))
	if filter == nil {
		return db, nil
	}

	exp := filter.toDNF().toGORMExpression()
	if exp == nil {
		return db, nil
	}

	return db.Clauses(exp), nil
}

func (r *GormRepository[ID, T]) Search(ctx context.Context, filter Filter, opts SearchOptions) ([]ID, error) {
	if err := opts.Order.validate(); err != nil {
		return nil, err
	}

	db, err := r.scope(ctx, filter)
	if err != nil {
		return nil, err
	}

	db = opts.Order.Apply(db)
	if opts.Offset > 0 {
		db = db.Offset(opts.Offset)
	}
	if opts.Limit != NoLimit {
		db = db.Limit(opts.Limit)
	}

	var ids []ID
	if err = db.Pluck(r.idColumn, &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *GormRepository[ID, T]) SearchCount(ctx context.Context, filter Filter) (int, error) {
	db, err := r.scope(ctx, filter)
	if err != nil {
		return 0, err
	}

	var n int64
	if err = db.Count(&n).Error; err != nil {
		return 0, err
	}

	return int(n), nil
}

// Fetch loads the records of ids. Unknown ids are skipped, duplicates are kept.
func (r *GormRepository[ID, T]) Fetch(ctx context.Context, ids []ID) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	if !isSafeColumnName(r.idColumn) {
		return nil, fmt.Errorf("%w: id column name contains forbidden symbols '%s'", ErrInvalidFilter, r.idColumn)
	}

	var records []T
	err := r.db.WithContext(ctx).
		Where(fmt.Sprintf("%s IN ?", r.idColumn), lo.Uniq(ids)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	byID := lo.KeyBy(records, r.idOf)

	return lo.FilterMap(ids, func(id ID, _ int) (T, bool) {
		record, ok := byID[id]
		return record, ok
	}), nil
}

var _ Repository[int, int] = (*GormRepository[int, int])(nil)
