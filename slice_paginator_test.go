package pagewindow

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewSlicePaginator_InvalidPerPage(t *testing.T) {
	for _, perPage := range []int{0, -1} {
		_, err := NewSlicePaginator(1, perPage, []int{1, 2})
		require.ErrorIs(t, err, ErrInvalidPerPage)
	}
}

func Test_SlicePaginator_Empty(t *testing.T) {
	ctx := context.Background()

	p, err := NewSlicePaginator[int](1, 10, nil)
	require.NoError(t, err)

	items, err := p.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	w, err := p.Window(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Count())
	assert.Equal(t, 0, w.Pages())
	assert.False(t, w.HasPrev())
	assert.False(t, w.HasNext())
	assert.Equal(t, 0, w.BeginCount())
	assert.Equal(t, 0, w.EndCount())
	assert.Empty(t, CollectPages(w.IterPages(DefaultPageEdges)))
}

func Test_SlicePaginator_Items(t *testing.T) {
	ctx := context.Background()
	data := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	tests := []struct {
		name       string
		page       int
		want       []int
		hasPrev    bool
		hasNext    bool
		beginCount int
		endCount   int
	}{
		{"first page", 1, []int{1, 2, 3}, false, true, 1, 3},
		{"second page", 2, []int{4, 5, 6}, true, true, 4, 6},
		{"last page", 3, []int{7, 8, 9}, true, false, 7, 9},
		{"past the end", 6, []int{}, true, false, 9, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewSlicePaginator(tt.page, 3, data)
			require.NoError(t, err)

			items, err := p.Items(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, items)
			assert.Equal(t, tt.want, slices.AppendSeq([]int{}, p.All()))

			w, err := p.Window(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, w.Pages())
			assert.Equal(t, tt.hasPrev, w.HasPrev())
			assert.Equal(t, tt.hasNext, w.HasNext())
			assert.Equal(t, tt.beginCount, w.BeginCount())
			assert.Equal(t, tt.endCount, w.EndCount())
		})
	}
}

func Test_SlicePaginator_PrevNext(t *testing.T) {
	ctx := context.Background()

	p, err := NewSlicePaginator(2, 3, []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)

	next, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, next.Page())

	prev, err := p.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, prev.Page())

	items, err := prev.Items(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, items)

	// No clamping: the page before the first one is empty.
	before := p.PrevPage().PrevPage()
	assert.Equal(t, 0, before.Page())
	assert.Empty(t, slices.Collect(before.All()))
}

func Test_SlicePaginator_PartitionRoundTrip(t *testing.T) {
	ctx := context.Background()

	for count := 0; count <= 23; count++ {
		for perPage := 1; perPage <= 7; perPage++ {
			data := make([]int, count)
			for i := range data {
				data[i] = i
			}

			first, err := NewSlicePaginator(1, perPage, data)
			require.NoError(t, err)
			w, err := first.Window(ctx)
			require.NoError(t, err)

			var got []int
			for page := 1; page <= w.Pages(); page++ {
				p, err := NewSlicePaginator(page, perPage, data)
				require.NoError(t, err)

				for item, err := range Iterate[int](ctx, p) {
					require.NoError(t, err)
					got = append(got, item)
				}
			}

			require.Equal(t, len(data), len(got), "count=%d perPage=%d", count, perPage)
			if count > 0 {
				require.Equal(t, data, got)
			}

			n, err := Len[int](ctx, first)
			require.NoError(t, err)
			require.Equal(t, count, n)
		}
	}
}

func Test_Summarize(t *testing.T) {
	ctx := context.Background()

	p, err := NewSlicePaginator(2, 3, []int{1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)

	res, err := Summarize[int](ctx, p, DefaultPageEdges)
	require.NoError(t, err)
	assert.Equal(t, &PageResult[int]{
		Items:      []int{4, 5, 6},
		Page:       2,
		PerPage:    3,
		Total:      7,
		Pages:      3,
		HasPrev:    true,
		HasNext:    true,
		PrevNum:    1,
		NextNum:    3,
		BeginCount: 4,
		EndCount:   6,
		Navigation: []PageNumber{1, 2, 3},
	}, res)

	empty, err := NewSlicePaginator[int](1, 3, nil)
	require.NoError(t, err)

	res, err = Summarize[int](ctx, empty, DefaultPageEdges)
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}
