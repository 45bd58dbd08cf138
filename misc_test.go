package pagewindow

import (
	"context"
	"fmt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

type tProduct struct {
	ID   int
	Name string
}

func productsOf(ids ...int) []tProduct {
	ret := make([]tProduct, 0, len(ids))
	for _, id := range ids {
		ret = append(ret, tProduct{ID: id, Name: fmt.Sprintf("product %d", id)})
	}

	return ret
}

// mockRepository is a Repository[int, tProduct] driven by testify expectations.
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Fetch(ctx context.Context, ids []int) ([]tProduct, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]tProduct), args.Error(1)
}

func (m *mockRepository) Search(ctx context.Context, filter Filter, opts SearchOptions) ([]int, error) {
	args := m.Called(ctx, filter, opts)
	return args.Get(0).([]int), args.Error(1)
}

func (m *mockRepository) SearchCount(ctx context.Context, filter Filter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
