package pagewindow

import (
	"encoding/json"
	"iter"
	"slices"
)

// PageNumber is an element of the navigation sequence produced by Window.IterPages.
// Gap marks an elided run of page numbers.
type PageNumber int

// Gap is the "no contiguous page" marker. Real page numbers start at 1.
const Gap PageNumber = 0

func (n PageNumber) IsGap() bool { return n == Gap }

// MarshalJSON renders Gap as null so that renderers can tell it from a page link.
func (n PageNumber) MarshalJSON() ([]byte, error) {
	if n.IsGap() {
		return []byte("null"), nil
	}

	return json.Marshal(int(n))
}

// PageEdges controls how many page numbers IterPages keeps around the edges of the
// sequence and around the current page.
type PageEdges struct {
	LeftEdge     int
	LeftCurrent  int
	RightCurrent int
	RightEdge    int
}

// DefaultPageEdges keeps two pages at each edge and two on each side of the current page:
//
//	1 2 … 7 8 9 [10] 11 12 … 19 20
var DefaultPageEdges = PageEdges{
	LeftEdge:     2,
	LeftCurrent:  2,
	RightCurrent: 2,
	RightEdge:    2,
}

// IterPages returns the navigation sequence over 1..Pages(). A page n is included when
// any of the following holds:
//
//   - n <= LeftEdge;
//   - Page()-LeftCurrent-1 <= n <= Page()+RightCurrent;
//   - n > Pages()-RightEdge.
//
// A single Gap precedes every included number that does not directly follow the
// previously emitted one. Gap is never emitted first and never twice in a row.
//
// The sequence is lazy and restartable: every range over it starts from page 1 again,
// so a renderer may walk it once to measure and once to draw.
func (w Window) IterPages(edges PageEdges) iter.Seq[PageNumber] {
	pages := w.Pages()

	return func(yield func(PageNumber) bool) {
		last := 0
		for num := 1; num <= pages; num++ {
			included := num <= edges.LeftEdge ||
				(num >= w.page-edges.LeftCurrent-1 && num <= w.page+edges.RightCurrent) ||
				num > pages-edges.RightEdge
			if !included {
				continue
			}

			if last+1 != num && last != 0 {
				if !yield(Gap) {
					return
				}
			}

			if !yield(PageNumber(num)) {
				return
			}
			last = num
		}
	}
}

// CollectPages materializes a navigation sequence.
func CollectPages(seq iter.Seq[PageNumber]) []PageNumber {
	return slices.Collect(seq)
}
