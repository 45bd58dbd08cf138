package pagewindow

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// FilterPaginator pages over the records matching a Filter, deferring counting and
// searching to a Repository.
//
// When the filter is the membership-list special case (see IDsIn) and no explicit order
// was requested, the literal id list is authoritative: it gives the count and is sliced
// directly, so the Repository is only asked to Fetch.
type FilterPaginator[ID comparable, T any] struct {
	page     int
	perPage  int
	repo     Repository[ID, T]
	filter   Filter
	order    Orderings
	idColumn string

	collection PaginateFactory[ID, T]
	errorOut   bool

	total memoCount
	inst  instrumentation
}

// PaginateFactory builds the paginator of a sibling page. Out-of-range handling belongs
// to it: with errorOut it must fail with ErrPageOutOfRange, without it must return an
// empty page.
type PaginateFactory[ID comparable, T any] interface {
	Paginate(ctx context.Context, page, perPage int, errorOut bool) (*FilterPaginator[ID, T], error)
}

func NewFilterPaginator[ID comparable, T any](
	repo Repository[ID, T],
	filter Filter,
	page, perPage int,
) (*FilterPaginator[ID, T], error) {
	if err := validatePerPage(perPage); err != nil {
		return nil, err
	}

	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	return &FilterPaginator[ID, T]{
		page:     page,
		perPage:  perPage,
		repo:     repo,
		filter:   filter,
		idColumn: DefaultIDColumn,
		inst:     instrumentation{strategy: strategyFilter},
	}, nil
}

// WithOrder requests an explicit order. It disables the membership-list fast path,
// since the backend has to apply the order.
func (p *FilterPaginator[ID, T]) WithOrder(order ...OrderBy) *FilterPaginator[ID, T] {
	p.order = order

	return p
}

// WithIDColumn changes the column recognized by the membership-list fast path.
func (p *FilterPaginator[ID, T]) WithIDColumn(column string) *FilterPaginator[ID, T] {
	p.idColumn = column

	return p
}

// WithKnownCount supplies a count computed elsewhere (e.g. cached by the caller) so that
// the Repository is never asked to count. Counting by filter can be much slower than
// fetching a single page when selectivity is low.
func (p *FilterPaginator[ID, T]) WithKnownCount(count int) *FilterPaginator[ID, T] {
	p.total = memoCount{count: count, counted: true}

	return p
}

// WithCollection makes Prev/Next delegate to collection with the given errorOut policy.
func (p *FilterPaginator[ID, T]) WithCollection(collection PaginateFactory[ID, T], errorOut bool) *FilterPaginator[ID, T] {
	p.collection = collection
	p.errorOut = errorOut

	return p
}

func (p *FilterPaginator[ID, T]) WithLogger(logger logrus.FieldLogger) *FilterPaginator[ID, T] {
	p.inst.logger = logger

	return p
}

func (p *FilterPaginator[ID, T]) WithMetrics(metrics *Metrics) *FilterPaginator[ID, T] {
	p.inst.metrics = metrics

	return p
}

func (p *FilterPaginator[ID, T]) Page() int        { return p.page }
func (p *FilterPaginator[ID, T]) PerPage() int     { return p.perPage }
func (p *FilterPaginator[ID, T]) Filter() Filter   { return p.filter }
func (p *FilterPaginator[ID, T]) Order() Orderings { return p.order }
func (p *FilterPaginator[ID, T]) ErrorOut() bool   { return p.errorOut }

// membership returns the literal id list when the fast path applies.
func (p *FilterPaginator[ID, T]) membership() ([]ID, bool) {
	if len(p.order) > 0 {
		return nil, false
	}

	return membershipIDs[ID](p.filter, p.idColumn)
}

func (p *FilterPaginator[ID, T]) requestWindow() Window {
	return NewWindow(p.page, p.perPage, 0)
}

// Count returns the total number of matching records. It is computed once.
func (p *FilterPaginator[ID, T]) Count(ctx context.Context) (int, error) {
	return p.total.get(func() (int, error) {
		if ids, ok := p.membership(); ok {
			return len(ids), nil
		}

		var n int
		err := p.inst.call(operationCount, p.requestWindow(), func() error {
			var err error
			n, err = p.repo.SearchCount(ctx, p.filter)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("cannot count records: %w", err)
		}

		return n, nil
	})
}

func (p *FilterPaginator[ID, T]) Window(ctx context.Context) (Window, error) {
	n, err := p.Count(ctx)
	if err != nil {
		return Window{}, err
	}

	return NewWindow(p.page, p.perPage, n), nil
}

// Items returns the records of the current page.
func (p *FilterPaginator[ID, T]) Items(ctx context.Context) ([]T, error) {
	if ids, ok := p.membership(); ok {
		lo, hi := NewWindow(p.page, p.perPage, len(ids)).Bounds()
		return p.fetch(ctx, ids[lo:hi])
	}

	w := p.requestWindow()
	if w.Offset() < 0 {
		return nil, nil
	}

	var ids []ID
	err := p.inst.call(operationItems, w, func() error {
		var err error
		ids, err = p.repo.Search(ctx, p.filter, SearchOptions{
			Offset: w.Offset(),
			Limit:  p.perPage,
			Order:  p.order,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot search page records: %w", err)
	}

	return p.fetch(ctx, ids)
}

// AllItems returns every matching record, in the literal list order or the requested
// order.
func (p *FilterPaginator[ID, T]) AllItems(ctx context.Context) ([]T, error) {
	if ids, ok := p.membership(); ok {
		return p.fetch(ctx, ids)
	}

	var ids []ID
	err := p.inst.call(operationAllItems, p.requestWindow(), func() error {
		var err error
		ids, err = p.repo.Search(ctx, p.filter, SearchOptions{
			Limit: NoLimit,
			Order: p.order,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot search records: %w", err)
	}

	return p.fetch(ctx, ids)
}

func (p *FilterPaginator[ID, T]) fetch(ctx context.Context, ids []ID) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []T
	err := p.inst.call(operationFetch, p.requestWindow(), func() error {
		var err error
		records, err = p.repo.Fetch(ctx, ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch records: %w", err)
	}

	return records, nil
}

// PrevPage asks the collection for page-1.
func (p *FilterPaginator[ID, T]) PrevPage(ctx context.Context) (*FilterPaginator[ID, T], error) {
	return p.sibling(ctx, p.page-1)
}

// NextPage asks the collection for page+1.
func (p *FilterPaginator[ID, T]) NextPage(ctx context.Context) (*FilterPaginator[ID, T], error) {
	return p.sibling(ctx, p.page+1)
}

func (p *FilterPaginator[ID, T]) Prev(ctx context.Context) (Paginator[T], error) {
	return asPaginator(p.PrevPage(ctx))
}

func (p *FilterPaginator[ID, T]) Next(ctx context.Context) (Paginator[T], error) {
	return asPaginator(p.NextPage(ctx))
}

// asPaginator keeps a failed sibling lookup from turning into a non-nil interface.
func asPaginator[ID comparable, T any](p *FilterPaginator[ID, T], err error) (Paginator[T], error) {
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *FilterPaginator[ID, T]) sibling(ctx context.Context, page int) (*FilterPaginator[ID, T], error) {
	if p.collection != nil {
		return p.collection.Paginate(ctx, page, p.perPage, p.errorOut)
	}

	return &FilterPaginator[ID, T]{
		page:       page,
		perPage:    p.perPage,
		repo:       p.repo,
		filter:     p.filter,
		order:      p.order,
		idColumn:   p.idColumn,
		collection: p.collection,
		errorOut:   p.errorOut,
		inst:       p.inst,
	}, nil
}

var _ Paginator[int] = (*FilterPaginator[int, int])(nil)
