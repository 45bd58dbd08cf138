package pagewindow

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Collection is a queryable set of records, the filter-backed equivalent of a query
// builder. It hands out FilterPaginator instances for a given page.
type Collection[ID comparable, T any] struct {
	repo     Repository[ID, T]
	filter   Filter
	order    Orderings
	idColumn string
	logger   logrus.FieldLogger
	metrics  *Metrics
}

func NewCollection[ID comparable, T any](repo Repository[ID, T], filter Filter, order ...OrderBy) *Collection[ID, T] {
	return &Collection[ID, T]{
		repo:     repo,
		filter:   filter,
		order:    order,
		idColumn: DefaultIDColumn,
	}
}

func (c *Collection[ID, T]) WithIDColumn(column string) *Collection[ID, T] {
	c.idColumn = column

	return c
}

func (c *Collection[ID, T]) WithLogger(logger logrus.FieldLogger) *Collection[ID, T] {
	c.logger = logger

	return c
}

func (c *Collection[ID, T]) WithMetrics(metrics *Metrics) *Collection[ID, T] {
	c.metrics = metrics

	return c
}

// Paginate returns a paginator for page. With errorOut, a page below 1 or a page past
// the last one (page 1 of an empty set excepted) fails with ErrPageOutOfRange. Without
// it such a page is returned as is and resolves to no records.
func (c *Collection[ID, T]) Paginate(ctx context.Context, page, perPage int, errorOut bool) (*FilterPaginator[ID, T], error) {
	p, err := NewFilterPaginator(c.repo, c.filter, page, perPage)
	if err != nil {
		return nil, err
	}

	p.WithOrder(c.order...).
		WithIDColumn(c.idColumn).
		WithLogger(c.logger).
		WithMetrics(c.metrics).
		WithCollection(c, errorOut)

	if !errorOut {
		return p, nil
	}

	if page < 1 {
		return nil, fmt.Errorf("%w: page %d", ErrPageOutOfRange, page)
	}

	if page == 1 {
		return p, nil
	}

	w, err := p.Window(ctx)
	if err != nil {
		return nil, err
	}

	if page > w.Pages() {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, w.Pages())
	}

	return p, nil
}

var _ PaginateFactory[int, int] = (*Collection[int, int])(nil)
