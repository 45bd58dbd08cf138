package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Alp4ka/pagewindow"
)

// Product is a catalog record.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `gorm:"index;not null" json:"category"`
	Price     int       `gorm:"index" json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

func ProductID(p Product) uint { return p.ID }

var _categories = []string{"books", "games", "garden", "music", "tools"}

// Categories lists the categories used by Seed.
func Categories() []string {
	return append([]string(nil), _categories...)
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver '%s'", driver)
	}
}

// Open connects to the database and migrates the catalog schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = db.AutoMigrate(&Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// NewExecutor returns the executor for raw paging statements. Postgres statements go
// through a dedicated pgx pool; the returned func releases it.
func NewExecutor(ctx context.Context, driver, dsn string, db *gorm.DB) (pagewindow.QueryExecutor, func(), error) {
	if driver != "postgres" {
		return pagewindow.NewGormExecutor(db), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	return pagewindow.NewPgxExecutor(pool), pool.Close, nil
}

// Seed inserts n generated products.
func Seed(ctx context.Context, db *gorm.DB, n int) error {
	if n <= 0 {
		return nil
	}

	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	products := make([]Product, 0, n)
	for i := range n {
		products = append(products, Product{
			Name:      fmt.Sprintf("Product %04d", i+1),
			Category:  _categories[i%len(_categories)],
			Price:     (i*37)%500 + 1,
			CreatedAt: created.Add(time.Duration(i) * time.Hour),
		})
	}

	if err := db.WithContext(ctx).CreateInBatches(products, 100).Error; err != nil {
		return fmt.Errorf("cannot seed products: %w", err)
	}

	return nil
}
