package pagewindow

// Window is the pure arithmetic of a page: given page, per-page size and the total number
// of records it derives the offset, the number of pages, the neighbour pages and the
// bounded [BeginCount, EndCount] range of the current page.
//
// Window never touches the data it describes. Every paginator computes one from its own
// count.
type Window struct {
	page    int
	perPage int
	count   int
}

// NewWindow builds a Window. It does not validate its arguments: perPage < 1 is rejected
// by the paginator constructors, and page < 1 is the caller's responsibility (see
// RawPageRequest.Decode).
func NewWindow(page, perPage, count int) Window {
	return Window{
		page:    page,
		perPage: perPage,
		count:   count,
	}
}

func (w Window) Page() int    { return w.page }
func (w Window) PerPage() int { return w.perPage }
func (w Window) Count() int   { return w.count }

// Offset returns the zero-based index of the first record of the page.
func (w Window) Offset() int {
	return (w.page - 1) * w.perPage
}

// Pages returns the total number of pages, 0 for an empty result set.
func (w Window) Pages() int {
	if w.perPage <= 0 || w.count <= 0 {
		return 0
	}

	return (w.count + w.perPage - 1) / w.perPage
}

func (w Window) HasPrev() bool { return w.page > 1 }
func (w Window) HasNext() bool { return w.page < w.Pages() }
func (w Window) PrevNum() int  { return w.page - 1 }
func (w Window) NextNum() int  { return w.page + 1 }

// BeginCount returns the 1-based position of the first record of the page, bounded by
// the total count. It is 0 for an empty result set.
func (w Window) BeginCount() int {
	return min(w.Offset()+1, w.count)
}

// EndCount returns the 1-based position of the last record of the page, bounded by the
// total count.
func (w Window) EndCount() int {
	return min(w.BeginCount()+w.perPage-1, w.count)
}

// Bounds returns the [lo, hi) slice bounds of the page within an ordered sequence of
// Count() elements. Pages outside of the sequence produce an empty range.
func (w Window) Bounds() (int, int) {
	lo := min(max(w.Offset(), 0), w.count)
	hi := min(max(w.Offset()+w.perPage, lo), w.count)

	return lo, hi
}
