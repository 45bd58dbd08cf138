package pagewindow

// RawPageRequest is intended for API payloads and query strings. For proper code
// generation, inline it:
//
//	type MyFilter struct {
//	    Paging RawPageRequest `json:",inline"`
//	}
type RawPageRequest struct {
	// Page - 1-based number of the requested page. Values below 1 select the first page.
	Page int `json:"page" form:"page"`
	// PerPage - maximum number of records on a page. Normalized with NormalizePerPage.
	PerPage int `json:"perPage" form:"perPage"`
}

// PageRequest is a validated page request: Page >= 1 and 1 <= PerPage <= MaxPerPage
// (or the max passed to DecodeMax).
type PageRequest struct {
	Page    int
	PerPage int
}

// Decode converts external request input into a PageRequest. This is the boundary where
// out-of-range input is clamped; paginator constructors take their arguments verbatim.
func (r RawPageRequest) Decode() PageRequest {
	return r.DecodeMax(MaxPerPage)
}

// DecodeMax is Decode with a custom per-page ceiling.
func (r RawPageRequest) DecodeMax(maxPerPage int) PageRequest {
	return PageRequest{
		Page:    NormalizePage(r.Page),
		PerPage: NormalizePerPageMax(r.PerPage, maxPerPage),
	}
}

// Offset returns the zero-based index of the first record of the requested page.
func (r PageRequest) Offset() int {
	return NewWindow(r.Page, r.PerPage, 0).Offset()
}
