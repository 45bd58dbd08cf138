package pagewindow

import "context"

// Fetcher resolves identifiers into full records. Records are returned in the order of
// the requested ids. It is the record-resolution step shared by the filter-backed, the
// query-backed and the search-backed paginators.
type Fetcher[ID comparable, T any] interface {
	Fetch(ctx context.Context, ids []ID) ([]T, error)
}

// SearchOptions bounds and orders a Repository search.
type SearchOptions struct {
	Offset int
	// Limit is the maximum number of ids to return; NoLimit returns all of them.
	Limit int
	// Order is the explicit order of the result. Empty leaves it to the backend.
	Order Orderings
}

// Repository executes filters. Counting and searching by filter may cost a full table
// scan; paginators call SearchCount at most once per instance.
type Repository[ID comparable, T any] interface {
	Fetcher[ID, T]
	Search(ctx context.Context, filter Filter, opts SearchOptions) ([]ID, error)
	SearchCount(ctx context.Context, filter Filter) (int, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc[ID comparable, T any] func(ctx context.Context, ids []ID) ([]T, error)

func (f FetcherFunc[ID, T]) Fetch(ctx context.Context, ids []ID) ([]T, error) {
	return f(ctx, ids)
}
