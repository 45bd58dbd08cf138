package pagewindow

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExecutor runs raw statements on a pgx connection pool, acquiring one connection per
// call.
type PgxExecutor struct {
	pool *pgxpool.Pool
}

func NewPgxExecutor(pool *pgxpool.Pool) *PgxExecutor {
	return &PgxExecutor{pool: pool}
}

func (e *PgxExecutor) WithSession(ctx context.Context, fn func(Session) error) error {
	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("cannot acquire connection: %w", err)
	}
	defer conn.Release()

	return fn(pgxSession{conn: conn.Conn()})
}

type pgxQueryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type pgxSession struct {
	conn pgxQueryer
}

func (s pgxSession) Query(ctx context.Context, stmt string) (Rows, error) {
	rows, err := s.conn.Query(ctx, stmt)
	if err != nil {
		return nil, err
	}

	return pgxRows{rows: rows}, nil
}

// pgxRows adapts pgx.Rows, whose Close reports nothing, to Rows.
type pgxRows struct {
	rows pgx.Rows
}

func (r pgxRows) Next() bool             { return r.rows.Next() }
func (r pgxRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r pgxRows) Err() error             { return r.rows.Err() }

func (r pgxRows) Columns() ([]string, error) {
	fields := r.rows.FieldDescriptions()
	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		columns = append(columns, f.Name)
	}

	return columns, nil
}

func (r pgxRows) Close() error {
	r.rows.Close()

	return r.rows.Err()
}

var _ QueryExecutor = (*PgxExecutor)(nil)
