package pagewindow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

// Rows is a forward-only cursor over a statement result. *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Err() error
	Close() error
}

// Session is a single acquired backend connection.
type Session interface {
	Query(ctx context.Context, stmt string) (Rows, error)
}

// QueryExecutor scopes a Session to fn. The session must be released on every path,
// including when fn fails.
type QueryExecutor interface {
	WithSession(ctx context.Context, fn func(Session) error) error
}

var _trailingLimitOffset = regexp.MustCompile(`(?i)\b(limit|offset)\s+\d+(\s*,\s*\d+)?\s*$`)

// normalizeStatement trims the statement and its trailing semicolon.
func normalizeStatement(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	stmt = strings.TrimSuffix(stmt, ";")

	return strings.TrimSpace(stmt)
}

func validateSearchStatement(stmt string) error {
	if stmt == "" {
		return fmt.Errorf("%w: empty search statement", ErrInvalidStatement)
	}

	if _trailingLimitOffset.MatchString(stmt) {
		return fmt.Errorf("%w: search statement must not end with LIMIT or OFFSET", ErrInvalidStatement)
	}

	return nil
}

func validateCountStatement(stmt string) error {
	if stmt == "" {
		return fmt.Errorf("%w: empty count statement", ErrInvalidStatement)
	}

	return nil
}

// QueryPaginator pages over the ids produced by a raw search statement. The search
// statement yields the id in its first column; the count statement yields one row with
// the total. Paging is appended as " LIMIT <perPage> OFFSET <offset>".
type QueryPaginator[ID comparable, T any] struct {
	page       int
	perPage    int
	executor   QueryExecutor
	fetcher    Fetcher[ID, T]
	searchStmt string
	countStmt  string

	total memoCount
	inst  instrumentation
}

func NewQueryPaginator[ID comparable, T any](
	executor QueryExecutor,
	fetcher Fetcher[ID, T],
	searchStmt, countStmt string,
	page, perPage int,
) (*QueryPaginator[ID, T], error) {
	if err := validatePerPage(perPage); err != nil {
		return nil, err
	}

	searchStmt = normalizeStatement(searchStmt)
	if err := validateSearchStatement(searchStmt); err != nil {
		return nil, err
	}

	countStmt = normalizeStatement(countStmt)
	if err := validateCountStatement(countStmt); err != nil {
		return nil, err
	}

	return &QueryPaginator[ID, T]{
		page:       page,
		perPage:    perPage,
		executor:   executor,
		fetcher:    fetcher,
		searchStmt: searchStmt,
		countStmt:  countStmt,
		inst:       instrumentation{strategy: strategyQuery},
	}, nil
}

func (p *QueryPaginator[ID, T]) WithLogger(logger logrus.FieldLogger) *QueryPaginator[ID, T] {
	p.inst.logger = logger

	return p
}

func (p *QueryPaginator[ID, T]) WithMetrics(metrics *Metrics) *QueryPaginator[ID, T] {
	p.inst.metrics = metrics

	return p
}

func (p *QueryPaginator[ID, T]) Page() int    { return p.page }
func (p *QueryPaginator[ID, T]) PerPage() int { return p.perPage }

// SearchStatement returns the normalized search statement.
func (p *QueryPaginator[ID, T]) SearchStatement() string { return p.searchStmt }

// CountStatement returns the normalized count statement.
func (p *QueryPaginator[ID, T]) CountStatement() string { return p.countStmt }

func (p *QueryPaginator[ID, T]) requestWindow() Window {
	return NewWindow(p.page, p.perPage, 0)
}

// Count runs the count statement once and memoizes its first column.
func (p *QueryPaginator[ID, T]) Count(ctx context.Context) (int, error) {
	return p.total.get(func() (int, error) {
		var n int64
		err := p.inst.call(operationCount, p.requestWindow(), func() error {
			return p.executor.WithSession(ctx, func(s Session) error {
				rows, err := s.Query(ctx, p.countStmt)
				if err != nil {
					return err
				}
				defer rows.Close()

				if !rows.Next() {
					if err := rows.Err(); err != nil {
						return err
					}

					return ErrCountNoRows
				}

				return rows.Scan(&n)
			})
		})
		if err != nil {
			return 0, fmt.Errorf("cannot count records: %w", err)
		}

		return int(n), nil
	})
}

func (p *QueryPaginator[ID, T]) Window(ctx context.Context) (Window, error) {
	n, err := p.Count(ctx)
	if err != nil {
		return Window{}, err
	}

	return NewWindow(p.page, p.perPage, n), nil
}

// PageStatement returns the search statement with the paging clause of the current page.
func (p *QueryPaginator[ID, T]) PageStatement() string {
	return p.searchStmt + fmt.Sprintf(" LIMIT %d OFFSET %d", p.perPage, p.requestWindow().Offset())
}

func (p *QueryPaginator[ID, T]) Items(ctx context.Context) ([]T, error) {
	w := p.requestWindow()
	if w.Offset() < 0 {
		return nil, nil
	}

	ids, err := p.searchIDs(ctx, operationItems, p.PageStatement())
	if err != nil {
		return nil, fmt.Errorf("cannot search page records: %w", err)
	}

	return p.fetch(ctx, ids)
}

func (p *QueryPaginator[ID, T]) AllItems(ctx context.Context) ([]T, error) {
	ids, err := p.searchIDs(ctx, operationAllItems, p.searchStmt)
	if err != nil {
		return nil, fmt.Errorf("cannot search records: %w", err)
	}

	return p.fetch(ctx, ids)
}

func (p *QueryPaginator[ID, T]) searchIDs(ctx context.Context, operation, stmt string) ([]ID, error) {
	var ids []ID
	err := p.inst.call(operation, p.requestWindow(), func() error {
		return p.executor.WithSession(ctx, func(s Session) error {
			rows, err := s.Query(ctx, stmt)
			if err != nil {
				return err
			}
			defer rows.Close()

			ids, err = scanFirstColumn[ID](rows)
			return err
		})
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// scanFirstColumn reads the first column of every row, discarding the rest.
func scanFirstColumn[ID any](rows Rows) ([]ID, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	if len(columns) == 0 {
		return nil, errors.New("search statement returned no columns")
	}

	var ids []ID
	for rows.Next() {
		var id ID
		dest := make([]any, len(columns))
		dest[0] = &id
		for i := 1; i < len(dest); i++ {
			dest[i] = new(any)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (p *QueryPaginator[ID, T]) fetch(ctx context.Context, ids []ID) ([]T, error) {
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

func (p *QueryPaginator[ID, T]) sibling(page int) *QueryPaginator[ID, T] {
	return &QueryPaginator[ID, T]{
		page:       page,
		perPage:    p.perPage,
		executor:   p.executor,
		fetcher:    p.fetcher,
		searchStmt: p.searchStmt,
		countStmt:  p.countStmt,
		inst:       p.inst,
	}
}

func (p *QueryPaginator[ID, T]) PrevPage() *QueryPaginator[ID, T] { return p.sibling(p.page - 1) }
func (p *QueryPaginator[ID, T]) NextPage() *QueryPaginator[ID, T] { return p.sibling(p.page + 1) }

func (p *QueryPaginator[ID, T]) Prev(context.Context) (Paginator[T], error) {
	return p.PrevPage(), nil
}

func (p *QueryPaginator[ID, T]) Next(context.Context) (Paginator[T], error) {
	return p.NextPage(), nil
}

var _ Paginator[int] = (*QueryPaginator[int, int])(nil)
