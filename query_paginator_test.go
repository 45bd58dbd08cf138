package pagewindow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type countingExecutor struct {
	QueryExecutor
	sessions int
}

func (e *countingExecutor) WithSession(ctx context.Context, fn func(Session) error) error {
	e.sessions++
	return e.QueryExecutor.WithSession(ctx, fn)
}

var _productFetcher = FetcherFunc[int, tProduct](func(_ context.Context, ids []int) ([]tProduct, error) {
	return productsOf(ids...), nil
})

func Test_NewQueryPaginator_Statements(t *testing.T) {
	tests := []struct {
		name       string
		search     string
		count      string
		perPage    int
		wantErr    error
		wantSearch string
	}{
		{
			name:       "trailing semicolon is trimmed",
			search:     "SELECT id FROM products ORDER BY id; ",
			count:      "SELECT COUNT(*) FROM products;",
			perPage:    10,
			wantSearch: "SELECT id FROM products ORDER BY id",
		},
		{
			name:    "trailing limit is rejected",
			search:  "SELECT id FROM products LIMIT 10",
			count:   "SELECT COUNT(*) FROM products",
			perPage: 10,
			wantErr: ErrInvalidStatement,
		},
		{
			name:    "trailing limit and offset are rejected",
			search:  "select id from products limit 10 offset 20;",
			count:   "SELECT COUNT(*) FROM products",
			perPage: 10,
			wantErr: ErrInvalidStatement,
		},
		{
			name:    "mysql style limit is rejected",
			search:  "SELECT id FROM products LIMIT 20, 10",
			count:   "SELECT COUNT(*) FROM products",
			perPage: 10,
			wantErr: ErrInvalidStatement,
		},
		{
			name:    "empty search statement",
			search:  " ; ",
			count:   "SELECT COUNT(*) FROM products",
			perPage: 10,
			wantErr: ErrInvalidStatement,
		},
		{
			name:    "empty count statement",
			search:  "SELECT id FROM products",
			count:   "",
			perPage: 10,
			wantErr: ErrInvalidStatement,
		},
		{
			name:    "zero per page",
			search:  "SELECT id FROM products",
			count:   "SELECT COUNT(*) FROM products",
			perPage: 0,
			wantErr: ErrInvalidPerPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewQueryPaginator[int, tProduct](nil, _productFetcher, tt.search, tt.count, 1, tt.perPage)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSearch, p.SearchStatement())
		})
	}
}

func Test_QueryPaginator(t *testing.T) {
	sqlMockFnList := []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
		newGORMMySQLMock,
		newGORMPostgresMock,
	}

	for _, sqlMockFn := range sqlMockFnList {
		dialect, db, dbMock, err := sqlMockFn()

		t.Run(fmt.Sprintf("%s items and count", dialect), func(t *testing.T) {
			require.NoError(t, err)
			ctx := context.Background()

			dbMock.ExpectQuery(`^SELECT COUNT\(\*\) FROM products$`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
			dbMock.ExpectQuery(`^SELECT id, name FROM products ORDER BY id LIMIT 3 OFFSET 3$`).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(4, "d").AddRow(5, "e").AddRow(6, "f"))

			executor := &countingExecutor{QueryExecutor: NewGormExecutor(db)}
			p, err := NewQueryPaginator[int, tProduct](
				executor,
				_productFetcher,
				"SELECT id, name FROM products ORDER BY id;",
				"SELECT COUNT(*) FROM products",
				2, 3,
			)
			require.NoError(t, err)

			for range 3 {
				count, err := p.Count(ctx)
				require.NoError(t, err)
				assert.Equal(t, 8, count)
			}

			items, err := p.Items(ctx)
			require.NoError(t, err)
			assert.Equal(t, productsOf(4, 5, 6), items)

			w, err := p.Window(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, w.Pages())
			assert.Equal(t, 4, w.BeginCount())
			assert.Equal(t, 6, w.EndCount())

			assert.Equal(t, 2, executor.sessions)
			require.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func Test_QueryPaginator_AllItems(t *testing.T) {
	_, db, dbMock, err := newGORMPostgresMock()
	require.NoError(t, err)

	dbMock.ExpectQuery(`^SELECT id FROM products WHERE price < 100$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2).AddRow(7))

	p, err := NewQueryPaginator[int, tProduct](
		NewGormExecutor(db),
		_productFetcher,
		"SELECT id FROM products WHERE price < 100",
		"SELECT 0",
		5, 3,
	)
	require.NoError(t, err)

	items, err := p.AllItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, productsOf(2, 7), items)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_QueryPaginator_Count_NoRows(t *testing.T) {
	_, db, dbMock, err := newGORMMySQLMock()
	require.NoError(t, err)

	dbMock.ExpectQuery(`^SELECT COUNT\(\*\) FROM products$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}))

	p, err := NewQueryPaginator[int, tProduct](
		NewGormExecutor(db),
		_productFetcher,
		"SELECT id FROM products",
		"SELECT COUNT(*) FROM products",
		1, 10,
	)
	require.NoError(t, err)

	_, err = p.Count(context.Background())
	require.ErrorIs(t, err, ErrCountNoRows)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_QueryPaginator_Items_QueryError(t *testing.T) {
	_, db, dbMock, err := newGORMMySQLMock()
	require.NoError(t, err)

	boom := errors.New("boom")
	dbMock.ExpectQuery(`^SELECT id FROM products LIMIT 10 OFFSET 0$`).WillReturnError(boom)

	p, err := NewQueryPaginator[int, tProduct](
		NewGormExecutor(db),
		_productFetcher,
		"SELECT id FROM products",
		"SELECT COUNT(*) FROM products",
		1, 10,
	)
	require.NoError(t, err)

	items, err := p.Items(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, items)
	require.NoError(t, dbMock.ExpectationsWereMet())
}

func Test_QueryPaginator_PageStatement(t *testing.T) {
	tests := []struct {
		page, perPage int
		want          string
	}{
		{1, 10, "SELECT id FROM t LIMIT 10 OFFSET 0"},
		{2, 10, "SELECT id FROM t LIMIT 10 OFFSET 10"},
		{4, 7, "SELECT id FROM t LIMIT 7 OFFSET 21"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p, err := NewQueryPaginator[int, tProduct](nil, _productFetcher, "SELECT id FROM t", "SELECT 1", tt.page, tt.perPage)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.PageStatement())
		})
	}
}

func Test_QueryPaginator_PrevNext(t *testing.T) {
	ctx := context.Background()

	p, err := NewQueryPaginator[int, tProduct](nil, _productFetcher, "SELECT id FROM t", "SELECT 1", 3, 5)
	require.NoError(t, err)

	next, err := p.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, next.Page())
	assert.Equal(t, "SELECT id FROM t LIMIT 5 OFFSET 15", p.NextPage().PageStatement())

	prev, err := p.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, prev.Page())
	assert.Equal(t, "SELECT 1", p.PrevPage().CountStatement())
}
