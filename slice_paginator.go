package pagewindow

import (
	"context"
	"iter"
	"slices"
)

// SlicePaginator pages over an ordered in-memory sequence. It performs no I/O: the
// context arguments exist only to satisfy Paginator.
type SlicePaginator[T any] struct {
	page    int
	perPage int
	data    []T
}

// NewSlicePaginator returns a paginator over data. A nil data is an empty sequence.
func NewSlicePaginator[T any](page, perPage int, data []T) (*SlicePaginator[T], error) {
	if err := validatePerPage(perPage); err != nil {
		return nil, err
	}

	return &SlicePaginator[T]{
		page:    page,
		perPage: perPage,
		data:    data,
	}, nil
}

func (p *SlicePaginator[T]) Page() int    { return p.page }
func (p *SlicePaginator[T]) PerPage() int { return p.perPage }

// Len returns the length of the underlying sequence.
func (p *SlicePaginator[T]) Len() int { return len(p.data) }

func (p *SlicePaginator[T]) window() Window {
	return NewWindow(p.page, p.perPage, len(p.data))
}

func (p *SlicePaginator[T]) Count(context.Context) (int, error) {
	return len(p.data), nil
}

func (p *SlicePaginator[T]) Window(context.Context) (Window, error) {
	return p.window(), nil
}

// Items returns data[offset:offset+perPage], bounded by the sequence.
func (p *SlicePaginator[T]) Items(context.Context) ([]T, error) {
	return p.items(), nil
}

func (p *SlicePaginator[T]) items() []T {
	lo, hi := p.window().Bounds()

	return p.data[lo:hi:hi]
}

func (p *SlicePaginator[T]) AllItems(context.Context) ([]T, error) {
	return p.data, nil
}

// All ranges over the records of the current page.
func (p *SlicePaginator[T]) All() iter.Seq[T] {
	return slices.Values(p.items())
}

// PrevPage returns a paginator over the same data for page-1. It does not clamp.
func (p *SlicePaginator[T]) PrevPage() *SlicePaginator[T] {
	return &SlicePaginator[T]{page: p.page - 1, perPage: p.perPage, data: p.data}
}

// NextPage returns a paginator over the same data for page+1. It does not clamp.
func (p *SlicePaginator[T]) NextPage() *SlicePaginator[T] {
	return &SlicePaginator[T]{page: p.page + 1, perPage: p.perPage, data: p.data}
}

func (p *SlicePaginator[T]) Prev(context.Context) (Paginator[T], error) {
	return p.PrevPage(), nil
}

func (p *SlicePaginator[T]) Next(context.Context) (Paginator[T], error) {
	return p.NextPage(), nil
}

var _ Paginator[int] = (*SlicePaginator[int])(nil)
