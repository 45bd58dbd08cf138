package catalog

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Alp4ka/pagewindow"
)

// ErrSearchDisabled is returned by Service.Search when no search index is configured.
var ErrSearchDisabled = errors.New("search is not configured")

const (
	topSearchStatement = "SELECT id FROM products ORDER BY price DESC, id ASC"
	topCountStatement  = "SELECT COUNT(*) FROM products"
)

// SortColumns maps the public sort aliases to product columns.
var SortColumns = pagewindow.ColumnMapping{
	"id":        "id",
	"name":      "name",
	"category":  "category",
	"price":     "price",
	"createdAt": "created_at",
}

// ListRequest selects a page of the product collection.
type ListRequest struct {
	Page   pagewindow.PageRequest
	Filter pagewindow.Filter
	Order  pagewindow.Orderings
	// Strict rejects pages outside of the result set with pagewindow.ErrPageOutOfRange.
	Strict bool
}

// SearchRequest selects a page of full-text search results.
type SearchRequest struct {
	Page   pagewindow.PageRequest
	Query  string
	Filter string
	Order  pagewindow.Orderings
}

type Service struct {
	products *pagewindow.GormRepository[uint, Product]
	executor pagewindow.QueryExecutor
	index    pagewindow.SearchIndex
	logger   logrus.FieldLogger
	metrics  *pagewindow.Metrics
}

type Option func(*Service)

func WithExecutor(executor pagewindow.QueryExecutor) Option {
	return func(s *Service) { s.executor = executor }
}

func WithSearchIndex(index pagewindow.SearchIndex) Option {
	return func(s *Service) { s.index = index }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(metrics *pagewindow.Metrics) Option {
	return func(s *Service) { s.metrics = metrics }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		products: pagewindow.NewGormRepository[uint, Product](db, ProductID),
		executor: pagewindow.NewGormExecutor(db),
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) SearchEnabled() bool {
	return s.index != nil
}

// List pages through products matching req.Filter.
func (s *Service) List(ctx context.Context, req ListRequest) (pagewindow.Paginator[Product], error) {
	p, err := pagewindow.NewCollection[uint, Product](s.products, req.Filter, req.Order...).
		WithLogger(s.logger).
		WithMetrics(s.metrics).
		Paginate(ctx, req.Page.Page, req.Page.PerPage, req.Strict)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// ListByIDs pages through the given products in the order of ids.
func (s *Service) ListByIDs(ctx context.Context, ids []uint, page pagewindow.PageRequest, strict bool) (pagewindow.Paginator[Product], error) {
	return s.List(ctx, ListRequest{
		Page:   page,
		Filter: pagewindow.IDsIn(ids...),
		Strict: strict,
	})
}

// Top pages through products from the most expensive one.
func (s *Service) Top(_ context.Context, page pagewindow.PageRequest) (pagewindow.Paginator[Product], error) {
	p, err := pagewindow.NewQueryPaginator[uint, Product](
		s.executor, s.products, topSearchStatement, topCountStatement, page.Page, page.PerPage)
	if err != nil {
		return nil, err
	}

	return p.WithLogger(s.logger).WithMetrics(s.metrics), nil
}

// Search pages through full-text search results. Records are loaded from the database.
func (s *Service) Search(_ context.Context, req SearchRequest) (pagewindow.Paginator[Product], error) {
	if s.index == nil {
		return nil, ErrSearchDisabled
	}

	p, err := pagewindow.NewSearchPaginator[uint, Product](s.index, s.products, req.Query, req.Page.Page, req.Page.PerPage)
	if err != nil {
		return nil, err
	}

	return p.WithFilter(req.Filter).
		WithSort(req.Order...).
		WithLogger(s.logger).
		WithMetrics(s.metrics), nil
}
