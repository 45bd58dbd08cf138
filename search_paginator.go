package pagewindow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
	"github.com/sirupsen/logrus"
)

// MaxSearchWindow is the largest number of hits AllItems asks a search engine for.
const MaxSearchWindow = 1000

// SearchIndex is the part of a meilisearch index a SearchPaginator needs.
// meilisearch.IndexManager satisfies it.
type SearchIndex interface {
	SearchWithContext(ctx context.Context, query string, request *meilisearch.SearchRequest) (*meilisearch.SearchResponse, error)
}

// SearchPaginator pages over full-text search hits. The engine is asked once per instance:
// the same response yields both the estimated total and the ids of the current page.
type SearchPaginator[ID comparable, T any] struct {
	page    int
	perPage int
	index   SearchIndex
	fetcher Fetcher[ID, T]
	query   string
	filter  string
	sort    Orderings
	idField string

	result *meilisearch.SearchResponse
	inst   instrumentation
}

func NewSearchPaginator[ID comparable, T any](
	index SearchIndex,
	fetcher Fetcher[ID, T],
	query string,
	page, perPage int,
) (*SearchPaginator[ID, T], error) {
	if err := validatePerPage(perPage); err != nil {
		return nil, err
	}

	return &SearchPaginator[ID, T]{
		page:    page,
		perPage: perPage,
		index:   index,
		fetcher: fetcher,
		query:   query,
		idField: DefaultIDColumn,
		inst:    instrumentation{strategy: strategySearch},
	}, nil
}

// WithFilter sets a filter expression in the engine's own syntax, e.g. "warranty IN [1, 2]".
func (p *SearchPaginator[ID, T]) WithFilter(filter string) *SearchPaginator[ID, T] {
	p.filter = filter

	return p
}

func (p *SearchPaginator[ID, T]) WithSort(order ...OrderBy) *SearchPaginator[ID, T] {
	p.sort = order

	return p
}

// WithIDField sets the hit attribute holding the record id.
func (p *SearchPaginator[ID, T]) WithIDField(field string) *SearchPaginator[ID, T] {
	p.idField = field

	return p
}

func (p *SearchPaginator[ID, T]) WithLogger(logger logrus.FieldLogger) *SearchPaginator[ID, T] {
	p.inst.logger = logger

	return p
}

func (p *SearchPaginator[ID, T]) WithMetrics(metrics *Metrics) *SearchPaginator[ID, T] {
	p.inst.metrics = metrics

	return p
}

func (p *SearchPaginator[ID, T]) Page() int    { return p.page }
func (p *SearchPaginator[ID, T]) PerPage() int { return p.perPage }

func (p *SearchPaginator[ID, T]) requestWindow() Window {
	return NewWindow(p.page, p.perPage, 0)
}

func (p *SearchPaginator[ID, T]) request(offset, limit int) (*meilisearch.SearchRequest, error) {
	if err := p.sort.validate(); err != nil {
		return nil, err
	}

	req := &meilisearch.SearchRequest{
		Offset: int64(offset),
		Limit:  int64(limit),
	}
	if p.filter != "" {
		req.Filter = p.filter
	}
	if len(p.sort) > 0 {
		req.Sort = p.sort.ToSearchSort()
	}

	return req, nil
}

func (p *SearchPaginator[ID, T]) search(ctx context.Context, operation string, offset, limit int) (*meilisearch.SearchResponse, error) {
	req, err := p.request(offset, limit)
	if err != nil {
		return nil, err
	}

	var resp *meilisearch.SearchResponse
	err = p.inst.call(operation, p.requestWindow(), func() error {
		var err error
		resp, err = p.index.SearchWithContext(ctx, p.query, req)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot search index: %w", err)
	}

	return resp, nil
}

// pageResult runs the page search once.
func (p *SearchPaginator[ID, T]) pageResult(ctx context.Context) (*meilisearch.SearchResponse, error) {
	if p.result != nil {
		return p.result, nil
	}

	offset := max(p.requestWindow().Offset(), 0)
	resp, err := p.search(ctx, operationItems, offset, p.perPage)
	if err != nil {
		return nil, err
	}
	p.result = resp

	return resp, nil
}

// Count returns the total the engine estimated for the query.
func (p *SearchPaginator[ID, T]) Count(ctx context.Context) (int, error) {
	resp, err := p.pageResult(ctx)
	if err != nil {
		return 0, err
	}

	return int(resp.EstimatedTotalHits), nil
}

func (p *SearchPaginator[ID, T]) Window(ctx context.Context) (Window, error) {
	n, err := p.Count(ctx)
	if err != nil {
		return Window{}, err
	}

	return NewWindow(p.page, p.perPage, n), nil
}

func (p *SearchPaginator[ID, T]) Items(ctx context.Context) ([]T, error) {
	if p.requestWindow().Offset() < 0 {
		return nil, nil
	}

	resp, err := p.pageResult(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := hitIDs[ID](resp, p.idField)
	if err != nil {
		return nil, err
	}

	return p.fetch(ctx, ids)
}

// AllItems returns at most MaxSearchWindow records, the engine does not page deeper.
func (p *SearchPaginator[ID, T]) AllItems(ctx context.Context) ([]T, error) {
	resp, err := p.search(ctx, operationAllItems, 0, MaxSearchWindow)
	if err != nil {
		return nil, err
	}

	ids, err := hitIDs[ID](resp, p.idField)
	if err != nil {
		return nil, err
	}

	return p.fetch(ctx, ids)
}

// hitIDs decodes the id attribute of every hit.
func hitIDs[ID any](resp *meilisearch.SearchResponse, idField string) ([]ID, error) {
	ids := make([]ID, 0, len(resp.Hits))
	for i, hit := range resp.Hits {
		value, ok := hit[idField]
		if !ok {
			return nil, fmt.Errorf("hit %d has no '%s' attribute", i, idField)
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("cannot decode hit %d id: %w", i, err)
		}

		var id ID
		if err = json.Unmarshal(raw, &id); err != nil {
			return nil, fmt.Errorf("cannot decode hit %d id: %w", i, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (p *SearchPaginator[ID, T]) fetch(ctx context.Context, ids []ID) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []T
	err := p.inst.call(operationFetch, p.requestWindow(), func() error {
		var err error
		records, err = p.fetcher.Fetch(ctx, ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot fetch records: %w", err)
	}

	return records, nil
}

func (p *SearchPaginator[ID, T]) sibling(page int) *SearchPaginator[ID, T] {
	return &SearchPaginator[ID, T]{
		page:    page,
		perPage: p.perPage,
		index:   p.index,
		fetcher: p.fetcher,
		query:   p.query,
		filter:  p.filter,
		sort:    p.sort,
		idField: p.idField,
		inst:    p.inst,
	}
}

func (p *SearchPaginator[ID, T]) PrevPage() *SearchPaginator[ID, T] { return p.sibling(p.page - 1) }
func (p *SearchPaginator[ID, T]) NextPage() *SearchPaginator[ID, T] { return p.sibling(p.page + 1) }

func (p *SearchPaginator[ID, T]) Prev(context.Context) (Paginator[T], error) {
	return p.PrevPage(), nil
}

func (p *SearchPaginator[ID, T]) Next(context.Context) (Paginator[T], error) {
	return p.NextPage(), nil
}

var _ Paginator[int] = (*SearchPaginator[int, int])(nil)
