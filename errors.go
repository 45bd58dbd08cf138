package pagewindow

import "errors"

var (
	// ErrInvalidPerPage is returned by every paginator constructor when perPage < 1.
	ErrInvalidPerPage = errors.New("per page must be a positive number")

	// ErrInvalidStatement is returned when a raw statement cannot be used for paging.
	ErrInvalidStatement = errors.New("invalid statement")

	// ErrCountNoRows is returned when a count statement yields no rows.
	ErrCountNoRows = errors.New("count statement returned no rows")

	// ErrPageOutOfRange is returned by Collection.Paginate when errorOut is set and the
	// requested page lies outside of the result set.
	ErrPageOutOfRange = errors.New("page out of range")

	// ErrInvalidFilter is returned when a filter cannot be translated for a backend.
	ErrInvalidFilter = errors.New("invalid filter")
)
