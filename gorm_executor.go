package pagewindow

import (
	"context"

	"gorm.io/gorm"
)

// GormExecutor runs raw statements through gorm, one dedicated connection per call.
type GormExecutor struct {
	db *gorm.DB
}

func NewGormExecutor(db *gorm.DB) *GormExecutor {
	return &GormExecutor{db: db}
}

// WithSession pins a single connection of the pool for the duration of fn. gorm returns
// it to the pool when fn returns.
func (e *GormExecutor) WithSession(ctx context.Context, fn func(Session) error) error {
	return e.db.WithContext(ctx).Connection(func(tx *gorm.DB) error {
		return fn(gormSession{tx: tx})
	})
}

type gormSession struct {
	tx *gorm.DB
}

func (s gormSession) Query(ctx context.Context, stmt string) (Rows, error) {
	return s.tx.Session(&gorm.Session{NewDB: true, Context: ctx}).Raw(stmt).Rows()
}

var _ QueryExecutor = (*GormExecutor)(nil)
