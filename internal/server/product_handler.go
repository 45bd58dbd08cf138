package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Alp4ka/pagewindow"
	"github.com/Alp4ka/pagewindow/internal/catalog"
)

var _defaultOrder = pagewindow.Orderings{{Column: "id", Direction: pagewindow.DirectionASC}}

// SearchSortFields maps the public sort aliases to search index attributes.
var SearchSortFields = pagewindow.ColumnMapping{
	"name":      "name",
	"price":     "price",
	"createdAt": "createdAt",
}

type pageQuery struct {
	pagewindow.RawPageRequest
	Sort []string `form:"sort"`
}

type listQuery struct {
	pageQuery
	Category []string `form:"category"`
	MinPrice *int     `form:"minPrice"`
	MaxPrice *int     `form:"maxPrice"`
	Name     string   `form:"q"`
	IDs      string   `form:"ids"`
	Strict   bool     `form:"strict"`
}

type searchQuery struct {
	pageQuery
	Query  string `form:"q"`
	Filter string `form:"filter"`
}

// ProductHandler serves the product listing endpoints.
type ProductHandler struct {
	service    *catalog.Service
	maxPerPage int
	edges      pagewindow.PageEdges
}

func NewProductHandler(service *catalog.Service, maxPerPage int, edges pagewindow.PageEdges) *ProductHandler {
	return &ProductHandler{
		service:    service,
		maxPerPage: maxPerPage,
		edges:      edges,
	}
}

// ListProducts endpoint GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids, err := parseIDs(q.IDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := pagewindow.ParseSort(q.Sort, catalog.SortColumns)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort parameter: " + err.Error()})
		return
	}

	page := q.DecodeMax(h.maxPerPage)
	ctx := c.Request.Context()

	var p pagewindow.Paginator[catalog.Product]
	if conditions := q.conditions(); len(ids) > 0 && len(conditions) == 0 && len(order) == 0 {
		p, err = h.service.ListByIDs(ctx, ids, page, q.Strict)
	} else {
		if len(ids) > 0 {
			conditions = append(conditions, pagewindow.Condition{Column: "id", Operator: pagewindow.OperatorIn, Value: ids})
		}
		if len(order) == 0 {
			order = _defaultOrder
		}

		p, err = h.service.List(ctx, catalog.ListRequest{
			Page:   page,
			Filter: pagewindow.Where(conditions...),
			Order:  order,
			Strict: q.Strict,
		})
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, p)
}

// TopProducts endpoint GET /products/top
func (h *ProductHandler) TopProducts(c *gin.Context) {
	var q pagewindow.RawPageRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Top(c.Request.Context(), q.DecodeMax(h.maxPerPage))
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, p)
}

// SearchProducts endpoint GET /products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := pagewindow.ParseSort(q.Sort, SearchSortFields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort parameter: " + err.Error()})
		return
	}

	p, err := h.service.Search(c.Request.Context(), catalog.SearchRequest{
		Page:   q.DecodeMax(h.maxPerPage),
		Query:  q.Query,
		Filter: q.Filter,
		Order:  order,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	h.respond(c, p)
}

func (q listQuery) conditions() []pagewindow.Condition {
	var conditions []pagewindow.Condition

	switch len(q.Category) {
	case 0:
	case 1:
		conditions = append(conditions, pagewindow.Condition{Column: "category", Operator: pagewindow.OperatorEq, Value: q.Category[0]})
	default:
		conditions = append(conditions, pagewindow.Condition{Column: "category", Operator: pagewindow.OperatorIn, Value: q.Category})
	}

	if q.MinPrice != nil {
		conditions = append(conditions, pagewindow.Condition{Column: "price", Operator: pagewindow.OperatorGTE, Value: *q.MinPrice})
	}
	if q.MaxPrice != nil {
		conditions = append(conditions, pagewindow.Condition{Column: "price", Operator: pagewindow.OperatorLTE, Value: *q.MaxPrice})
	}
	if q.Name != "" {
		conditions = append(conditions, pagewindow.Condition{Column: "name", Operator: pagewindow.OperatorLike, Value: "%" + q.Name + "%"})
	}

	return conditions
}

// parseIDs reads a comma separated id list, keeping its order.
func parseIDs(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 0)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid product id '%s'", part)
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}

func (h *ProductHandler) respond(c *gin.Context, p pagewindow.Paginator[catalog.Product]) {
	res, err := pagewindow.Summarize(c.Request.Context(), p, h.edges)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *ProductHandler) fail(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, pagewindow.ErrPageOutOfRange):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pagewindow.ErrInvalidFilter), errors.Is(err, pagewindow.ErrInvalidPerPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrSearchDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
