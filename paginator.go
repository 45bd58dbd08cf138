package pagewindow

import (
	"context"
	"fmt"
	"iter"
)

// Paginator is the capability set shared by every pagination strategy.
//
// A paginator is built for one request with a page number, a page size and a data
// source. The total count is computed at most once per instance; everything else is
// derived from it through Window. Paginators are not safe for concurrent use.
type Paginator[T any] interface {
	Page() int
	PerPage() int
	// Count returns the total number of matching records, independent of paging.
	Count(ctx context.Context) (int, error)
	// Window returns the navigation arithmetic computed from Count.
	Window(ctx context.Context) (Window, error)
	// Items returns the records of the current page, at most PerPage of them.
	Items(ctx context.Context) ([]T, error)
	// AllItems returns every matching record.
	AllItems(ctx context.Context) ([]T, error)
	Prev(ctx context.Context) (Paginator[T], error)
	Next(ctx context.Context) (Paginator[T], error)
}

// Iterate ranges over the records of the current page. Iterating a paginator is the same
// as iterating its Items; a failure is yielded once as the last element.
func Iterate[T any](ctx context.Context, p Paginator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		items, err := p.Items(ctx)
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}

		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Len is the length of a paginator: its total count.
func Len[T any](ctx context.Context, p Paginator[T]) (int, error) {
	return p.Count(ctx)
}

// PageResult is a renderer-facing page: the records of the current page together with the
// navigation metadata.
type PageResult[T any] struct {
	// Items result elements.
	Items []T `json:"items"`
	// Page current page number.
	Page int `json:"page"`
	// PerPage applied page size.
	PerPage int `json:"perPage"`
	// Total number of elements.
	Total int `json:"total"`
	// Pages total number of pages.
	Pages      int  `json:"pages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
	PrevNum    int  `json:"prevNum"`
	NextNum    int  `json:"nextNum"`
	BeginCount int  `json:"beginCount"`
	EndCount   int  `json:"endCount"`
	// Navigation page numbers, gaps are rendered as null.
	Navigation []PageNumber `json:"navigation"`
}

// Summarize resolves the current page of p and packs it with its navigation metadata.
func Summarize[T any](ctx context.Context, p Paginator[T], edges PageEdges) (*PageResult[T], error) {
	w, err := p.Window(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot summarize page: %w", err)
	}

	items, err := p.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot summarize page: %w", err)
	}

	if items == nil {
		items = make([]T, 0)
	}

	return &PageResult[T]{
		Items:      items,
		Page:       w.Page(),
		PerPage:    w.PerPage(),
		Total:      w.Count(),
		Pages:      w.Pages(),
		HasPrev:    w.HasPrev(),
		HasNext:    w.HasNext(),
		PrevNum:    w.PrevNum(),
		NextNum:    w.NextNum(),
		BeginCount: w.BeginCount(),
		EndCount:   w.EndCount(),
		Navigation: CollectPages(w.IterPages(edges)),
	}, nil
}

func validatePerPage(perPage int) error {
	if perPage < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidPerPage, perPage)
	}

	return nil
}

// memoCount is the lazily computed, never invalidated total of a paginator.
type memoCount struct {
	count   int
	counted bool
}

func (m *memoCount) get(compute func() (int, error)) (int, error) {
	if m.counted {
		return m.count, nil
	}

	n, err := compute()
	if err != nil {
		return 0, err
	}

	m.count, m.counted = n, true

	return n, nil
}
