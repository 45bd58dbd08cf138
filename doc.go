// Package pagewindow provides page-number pagination over in-memory slices, filter-driven
// repositories, raw SQL statements and search engines.
//
// Overview
//
// A paginator is created for a single request from a page number, a page size and a data
// source. It answers two kinds of questions:
//   - which records belong to the current page (Items);
//   - how the page relates to the whole result set (Window): offset, number of pages,
//     neighbour pages, the [BeginCount, EndCount] range and the navigation sequence
//     produced by Window.IterPages.
//
// Strategies
//   - SlicePaginator: an ordered in-memory sequence, no I/O.
//   - FilterPaginator: a structured Filter executed by a Repository. The membership-list
//     filter built with IDsIn is sliced locally and only fetched.
//   - QueryPaginator: a raw search statement plus a count statement, run through a
//     QueryExecutor (GormExecutor, PgxExecutor). Paging is appended as LIMIT/OFFSET.
//   - SearchPaginator: a meilisearch index; one request yields both the total and the page.
//
// The total count is computed at most once per paginator. Counting may be far more
// expensive than fetching a page, so FilterPaginator also accepts a count computed
// elsewhere (WithKnownCount).
//
// IMPORTANT:
// Paginators are request scoped and not safe for concurrent use.
package pagewindow
